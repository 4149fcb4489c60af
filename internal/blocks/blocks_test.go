package blocks

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
)

func post(id int64, date, category string) model.Post {
	return model.Post{
		ID:       id,
		Title:    "Bài " + date,
		Date:     date,
		Category: category,
		Status:   model.PostStatusPublished,
	}
}

func feedBlock(id int64, typ, position, target, source string, count int) model.DisplayBlock {
	return model.DisplayBlock{
		ID:         id,
		Name:       typ,
		Position:   position,
		Type:       typ,
		IsVisible:  true,
		TargetPage: target,
		Content:    model.FeedContent{Source: source, ItemCount: count},
	}
}

func ids(posts []model.Post) []int64 {
	out := make([]int64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestCompose_InvisibleBlocksNeverRendered(t *testing.T) {
	hidden := feedBlock(1, model.BlockTypeGrid, model.BlockPositionMain, model.BlockTargetAll, model.BlockSourceAll, 5)
	hidden.IsVisible = false
	htmlBlock := model.DisplayBlock{
		ID: 2, Position: model.BlockPositionSidebar, Type: model.BlockTypeHTML,
		TargetPage: model.BlockTargetAll, Content: model.HTMLContent{Markup: "<p>x</p>"},
	}

	in := Input{
		Blocks: []model.DisplayBlock{hidden, htmlBlock},
		Posts:  []model.Post{post(1, "2024-01-01", "news")},
	}

	for _, page := range []router.Page{router.PageHome, router.PageNews, router.PageNewsDetail} {
		in.Page = page
		assert.Empty(t, Compose(in, model.BlockPositionMain), "page %s", page)
		assert.Empty(t, Compose(in, model.BlockPositionSidebar), "page %s", page)
	}
}

func TestCompose_TargetPage(t *testing.T) {
	tests := []struct {
		target string
		page   router.Page
		want   bool
	}{
		{model.BlockTargetAll, router.PageNews, true},
		{model.BlockTargetAll, router.PageNewsDetail, true},
		{model.BlockTargetHome, router.PageHome, true},
		{model.BlockTargetHome, router.PageNews, false},
		{model.BlockTargetDetail, router.PageNewsDetail, true},
		{model.BlockTargetDetail, router.PageHome, false},
	}

	for _, tt := range tests {
		t.Run(tt.target+"/"+tt.page.String(), func(t *testing.T) {
			in := Input{
				Page:   tt.page,
				Blocks: []model.DisplayBlock{feedBlock(1, model.BlockTypeGrid, model.BlockPositionMain, tt.target, "", 3)},
				Posts:  []model.Post{post(1, "2024-01-01", "news")},
			}
			got := Compose(in, model.BlockPositionMain)
			if (len(got) == 1) != tt.want {
				t.Errorf("rendered %d blocks, want shown=%v", len(got), tt.want)
			}
		})
	}
}

func TestCompose_HomeToggles(t *testing.T) {
	in := Input{
		Page: router.PageHome,
		Blocks: []model.DisplayBlock{
			feedBlock(1, model.BlockTypeHero, model.BlockPositionMain, model.BlockTargetAll, "", 3),
			feedBlock(2, model.BlockTypeHighlight, model.BlockPositionMain, model.BlockTargetAll, "", 3),
			feedBlock(3, model.BlockTypeList, model.BlockPositionMain, model.BlockTargetAll, "", 3),
			feedBlock(4, model.BlockTypeGrid, model.BlockPositionMain, model.BlockTargetAll, "", 3),
		},
		Posts: []model.Post{post(1, "2024-01-01", "news")},
	}

	got := Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].Block.ID)

	in.Config.ShowWelcomeBanner = true
	in.Config.HomeShowProgram = true
	assert.Len(t, Compose(in, model.BlockPositionMain), 4)

	// Toggles only apply to the home page.
	in.Config = model.SiteConfig{}
	in.Page = router.PageNews
	assert.Len(t, Compose(in, model.BlockPositionMain), 4)
}

func TestSortByDate(t *testing.T) {
	posts := []model.Post{
		post(1, "không rõ", "news"),
		post(2, "2024-01-15", "news"),
		post(3, "", "news"),
		post(4, "2024-03-01T08:00:00Z", "news"),
		post(5, "2024-01-15", "news"),
		post(6, "2023-12-31", "news"),
	}

	got := SortByDate(posts)
	assert.Equal(t, []int64{4, 2, 5, 6, 1, 3}, ids(got))
	assert.Equal(t, int64(1), posts[0].ID, "input must not be reordered")
}

func TestResolve(t *testing.T) {
	featured := post(3, "2024-01-03", "activity")
	featured.IsFeatured = true
	posts := []model.Post{post(1, "2024-01-01", "news"), post(2, "2024-01-02", "activity"), featured}

	assert.Equal(t, []int64{1, 2, 3}, ids(Resolve(posts, model.BlockSourceAll)))
	assert.Equal(t, []int64{1, 2, 3}, ids(Resolve(posts, "")))
	assert.Equal(t, []int64{3}, ids(Resolve(posts, model.BlockSourceFeatured)))
	assert.Equal(t, []int64{2, 3}, ids(Resolve(posts, "activity")))
	assert.Empty(t, Resolve(posts, "missing"))
}

func TestCompose_Truncation(t *testing.T) {
	var posts []model.Post
	for i := 1; i <= 10; i++ {
		posts = append(posts, post(int64(i), time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), "news"))
	}
	grid := feedBlock(1, model.BlockTypeGrid, model.BlockPositionMain, model.BlockTargetAll, "", 3)

	in := Input{Page: router.PageNews, Blocks: []model.DisplayBlock{grid}, Posts: posts}
	got := Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	assert.Equal(t, []int64{10, 9, 8}, ids(got[0].Items))

	// Home news count overrides the grid's own count on the home page.
	in.Page = router.PageHome
	in.Config.HomeNewsCount = 6
	got = Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Items, 6)

	// A zero home news count falls back to the block's count.
	in.Config.HomeNewsCount = 0
	got = Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Items, 3)

	// A sidebar grid keeps its own count on the home page.
	in.Config.HomeNewsCount = 6
	in.Blocks = []model.DisplayBlock{feedBlock(3, model.BlockTypeGrid, model.BlockPositionSidebar, model.BlockTargetAll, "", 2)}
	got = Compose(in, model.BlockPositionSidebar)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Items, 2)

	// A list block is never overridden.
	in.Config.HomeShowProgram = true
	in.Blocks = []model.DisplayBlock{feedBlock(2, model.BlockTypeList, model.BlockPositionMain, model.BlockTargetAll, "", 2)}
	got = Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Items, 2)
}

func TestCompose_ZeroItemCountRendersNothing(t *testing.T) {
	in := Input{
		Page:   router.PageNews,
		Blocks: []model.DisplayBlock{feedBlock(1, model.BlockTypeGrid, model.BlockPositionMain, model.BlockTargetAll, "", 0)},
		Posts:  []model.Post{post(1, "2024-01-01", "news")},
	}
	assert.Empty(t, Compose(in, model.BlockPositionMain))
}

func TestCompose_ThreePostGrid(t *testing.T) {
	in := Input{
		Page:   router.PageNews,
		Blocks: []model.DisplayBlock{feedBlock(1, model.BlockTypeGrid, model.BlockPositionMain, model.BlockTargetAll, model.BlockSourceAll, 2)},
		Posts: []model.Post{
			{ID: 1, Title: "Tháng Một", Date: "2024-01-10", Status: model.PostStatusPublished},
			{ID: 2, Title: "Tháng Ba", Date: "2024-03-10", Status: model.PostStatusPublished},
			{ID: 3, Title: "Tháng Hai", Date: "2024-02-10", Status: model.PostStatusPublished},
		},
	}

	got := Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	require.Len(t, got[0].Items, 2)
	assert.Equal(t, "Tháng Ba", got[0].Items[0].Title)
	assert.Equal(t, "Tháng Hai", got[0].Items[1].Title)
}

func TestCompose_DraftsExcluded(t *testing.T) {
	draft := post(2, "2024-05-01", "news")
	draft.Status = model.PostStatusDraft
	in := Input{
		Page:   router.PageNews,
		Blocks: []model.DisplayBlock{feedBlock(1, model.BlockTypeList, model.BlockPositionMain, model.BlockTargetAll, "", 5)},
		Posts:  []model.Post{post(1, "2024-01-01", "news"), draft},
	}
	got := Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	assert.Equal(t, []int64{1}, ids(got[0].Items))
}

func TestCompose_Hero(t *testing.T) {
	in := Input{
		Page:   router.PageNews,
		Blocks: []model.DisplayBlock{feedBlock(1, model.BlockTypeHero, model.BlockPositionMain, model.BlockTargetAll, "", 5)},
		Posts: []model.Post{
			post(1, "2024-01-01", "news"),
			post(2, "2024-01-02", "news"),
			post(3, "2024-01-03", "news"),
			post(4, "2024-01-04", "news"),
		},
	}
	got := Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Primary)
	assert.Equal(t, int64(4), got[0].Primary.ID)
	assert.Equal(t, []int64{3, 2}, ids(got[0].Secondary))
	assert.Nil(t, got[0].Items)

	in.Posts = in.Posts[:1]
	got = Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Secondary)
}

func TestCompose_SidebarBlocksAlwaysRender(t *testing.T) {
	now := time.Date(2024, 9, 5, 7, 30, 0, 0, time.UTC)
	in := Input{
		Page: router.PageNews,
		Blocks: []model.DisplayBlock{
			feedBlock(1, model.BlockTypeStats, model.BlockPositionSidebar, model.BlockTargetAll, "", 0),
			feedBlock(2, model.BlockTypeDocs, model.BlockPositionSidebar, model.BlockTargetAll, "", 2),
			{
				ID: 3, Position: model.BlockPositionSidebar, Type: model.BlockTypeHTML, IsVisible: true,
				TargetPage: model.BlockTargetAll,
				Content:    model.HTMLContent{Markup: `<p onclick="x()">Liên hệ</p><script>alert(1)</script>`},
			},
		},
		Stats: model.VisitStats{Online: 3, Today: 10, ThisMonth: 100, Total: 1000},
		Now:   now,
	}

	got := Compose(in, model.BlockPositionSidebar)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].Stats)
	assert.Equal(t, int64(1000), got[0].Stats.Total)
	assert.Equal(t, now, got[0].Stats.Now)

	assert.Empty(t, got[1].Documents)

	html := string(got[2].HTML)
	assert.Contains(t, html, "Liên hệ")
	assert.NotContains(t, html, "onclick")
	assert.False(t, strings.Contains(html, "<script"), "script must be stripped: %q", html)
}

func TestCompose_DocsTruncated(t *testing.T) {
	in := Input{
		Page:      router.PageHome,
		Blocks:    []model.DisplayBlock{feedBlock(1, model.BlockTypeDocs, model.BlockPositionSidebar, model.BlockTargetAll, "", 2)},
		Documents: []model.Document{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	got := Compose(in, model.BlockPositionSidebar)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Documents, 2)
}

func TestCompose_StaffAndCategoryLists(t *testing.T) {
	in := Input{
		Page: router.PageIntro,
		Blocks: []model.DisplayBlock{
			feedBlock(1, model.BlockTypeStaffList, model.BlockPositionSidebar, model.BlockTargetAll, "", 1),
			feedBlock(2, model.BlockTypeCategoryList, model.BlockPositionSidebar, model.BlockTargetAll, "", 0),
		},
		Staff:      []model.StaffMember{{ID: 1, FullName: "A"}, {ID: 2, FullName: "B"}},
		Categories: []model.PostCategory{{Slug: "news", Name: "Tin tức"}},
	}
	got := Compose(in, model.BlockPositionSidebar)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Staff, 1)
	assert.Len(t, got[1].Categories, 1)

	in.Staff = nil
	in.Categories = nil
	assert.Empty(t, Compose(in, model.BlockPositionSidebar))
}

func TestRendered_Badge(t *testing.T) {
	in := Input{
		Page:       router.PageNews,
		Blocks:     []model.DisplayBlock{feedBlock(1, model.BlockTypeList, model.BlockPositionMain, model.BlockTargetAll, "", 5)},
		Posts:      []model.Post{post(1, "2024-01-02", "activity"), post(2, "2024-01-01", "gone")},
		Categories: []model.PostCategory{{Slug: "activity", Name: "Hoạt động", Color: "#16a34a"}},
	}
	got := Compose(in, model.BlockPositionMain)
	require.Len(t, got, 1)
	r := got[0]

	assert.Equal(t, "HOẠT ĐỘNG", r.Badge(r.Items[0]))
	assert.Equal(t, "#16a34a", r.BadgeColor(r.Items[0]))
	assert.Equal(t, DefaultBadge, r.Badge(r.Items[1]))
	assert.Empty(t, r.BadgeColor(r.Items[1]))
}

func TestCompose_PreservesBlockOrder(t *testing.T) {
	in := Input{
		Page: router.PageNews,
		Blocks: []model.DisplayBlock{
			feedBlock(7, model.BlockTypeGrid, model.BlockPositionMain, model.BlockTargetAll, "", 1),
			feedBlock(3, model.BlockTypeGrid, model.BlockPositionSidebar, model.BlockTargetAll, "", 1),
			feedBlock(5, model.BlockTypeGrid, model.BlockPositionMain, model.BlockTargetAll, "", 1),
		},
		Posts: []model.Post{post(1, "2024-01-01", "news")},
	}
	got := Compose(in, model.BlockPositionMain)
	require.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].Block.ID)
	assert.Equal(t, int64(5), got[1].Block.ID)
}
