package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// ListStaff returns staff members by display order.
func (r *Repository) ListStaff(ctx context.Context) ([]model.StaffMember, error) {
	rows, err := r.queries.ListStaffMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	return mapRows(rows, staffFromRow), nil
}

// GetStaffMember returns a staff member by id.
func (r *Repository) GetStaffMember(ctx context.Context, id int64) (model.StaffMember, error) {
	row, err := r.queries.GetStaffMember(ctx, id)
	if err != nil {
		return model.StaffMember{}, notFound(err, "staff member", id)
	}
	return staffFromRow(row), nil
}

// CreateStaffMember validates and appends a staff member.
func (r *Repository) CreateStaffMember(ctx context.Context, in model.StaffMember) (model.StaffMember, error) {
	in, err := prepareStaff(in)
	if err != nil {
		return model.StaffMember{}, err
	}
	order, err := nextOrder(r.queries.MaxStaffOrder(ctx))
	if err != nil {
		return model.StaffMember{}, fmt.Errorf("reading staff order: %w", err)
	}
	row, err := r.queries.CreateStaffMember(ctx, store.CreateStaffMemberParams{
		FullName:   in.FullName,
		Position:   in.Position,
		PartyDate:  in.PartyDate,
		Email:      in.Email,
		AvatarUrl:  in.AvatarURL,
		OrderIndex: order,
	})
	if err != nil {
		return model.StaffMember{}, fmt.Errorf("creating staff member: %w", err)
	}
	return staffFromRow(row), nil
}

// UpdateStaffMember validates and overwrites a staff member.
func (r *Repository) UpdateStaffMember(ctx context.Context, id int64, in model.StaffMember) (model.StaffMember, error) {
	current, err := r.queries.GetStaffMember(ctx, id)
	if err != nil {
		return model.StaffMember{}, notFound(err, "staff member", id)
	}
	in, err = prepareStaff(in)
	if err != nil {
		return model.StaffMember{}, err
	}
	row, err := r.queries.UpdateStaffMember(ctx, store.UpdateStaffMemberParams{
		FullName:   in.FullName,
		Position:   in.Position,
		PartyDate:  in.PartyDate,
		Email:      in.Email,
		AvatarUrl:  in.AvatarURL,
		OrderIndex: current.OrderIndex,
		ID:         id,
	})
	if err != nil {
		return model.StaffMember{}, fmt.Errorf("updating staff member %d: %w", id, err)
	}
	return staffFromRow(row), nil
}

// DeleteStaffMember removes a staff member.
func (r *Repository) DeleteStaffMember(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteStaffMember(ctx, id)
	return affected(n, err, "staff member", id)
}

// ReorderStaff applies a batch of order updates atomically.
func (r *Repository) ReorderStaff(ctx context.Context, updates []model.OrderUpdate) error {
	return r.reorder(ctx, "staff member", updates, (*store.Queries).UpdateStaffOrder)
}

func prepareStaff(in model.StaffMember) (model.StaffMember, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Position = strings.TrimSpace(in.Position)
	in.Email = strings.TrimSpace(in.Email)

	var verr ValidationError
	verr.require("full_name", in.FullName, "Họ tên không được để trống")
	verr.require("position", in.Position, "Chức vụ không được để trống")
	return in, verr.err()
}
