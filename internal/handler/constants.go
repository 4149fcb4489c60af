package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot          = "/"
	RouteSuffixNew     = "/new"
	RouteSuffixReorder = "/reorder"
	RouteSuffixMove    = "/move"
	RouteSuffixDraft   = "/draft"
	RouteSuffixImages  = "/images"
	RouteParamID       = "/{id}"
	RouteImageID       = "/images/{imageId}"

	RouteLogin   = "/login"
	RouteLogout  = "/logout"
	RouteHealth  = "/health"
	RouteRobots  = "/robots.txt"
	RouteSitemap = "/sitemap.xml"
	RouteStatic  = "/static/*"
	RouteAdmin   = "/admin"
	RouteRefresh = "/refresh"

	RouteNews          = "/news"
	RouteCategories    = "/categories"
	RouteIntro         = "/intro"
	RouteBlocks        = "/blocks"
	RouteDocuments     = "/documents"
	RouteDocCategories = "/document-categories"
	RouteGallery       = "/gallery"
	RouteStaff         = "/staff"
	RouteVideos        = "/videos"
	RouteUsers         = "/users"
	RouteMenu          = "/menu"
	RouteSettings      = "/settings"
	RouteEvents        = "/events"
	RouteScheduler     = "/scheduler"
)

// Redirect targets after console actions.
const (
	redirectLogin              = RouteLogin
	redirectAdmin              = RouteAdmin
	redirectAdminNews          = RouteAdmin + RouteNews
	redirectAdminCategories    = RouteAdmin + RouteCategories
	redirectAdminIntro         = RouteAdmin + RouteIntro
	redirectAdminBlocks        = RouteAdmin + RouteBlocks
	redirectAdminDocuments     = RouteAdmin + RouteDocuments
	redirectAdminDocCategories = RouteAdmin + RouteDocCategories
	redirectAdminGallery       = RouteAdmin + RouteGallery
	redirectAdminStaff         = RouteAdmin + RouteStaff
	redirectAdminVideos        = RouteAdmin + RouteVideos
	redirectAdminUsers         = RouteAdmin + RouteUsers
	redirectAdminMenu          = RouteAdmin + RouteMenu
	redirectAdminSettings      = RouteAdmin + RouteSettings
	redirectAdminScheduler     = RouteAdmin + RouteScheduler
)

// Flash messages shared by the console.
const (
	msgInvalidForm   = "Dữ liệu gửi lên không hợp lệ."
	msgCheckForm     = "Vui lòng kiểm tra lại thông tin."
	msgSaved         = "Đã lưu thành công."
	msgDeleted       = "Đã xóa thành công."
	msgOrderSaved    = "Đã cập nhật thứ tự."
	msgLoadFailed    = "Không thể tải dữ liệu."
	msgInternalError = "Đã xảy ra lỗi. Vui lòng thử lại."
	msgRefreshed     = "Đã tải lại dữ liệu trang web."
)
