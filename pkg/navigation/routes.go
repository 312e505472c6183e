package navigation

import (
	"context"

	"github.com/systra-connect/portal/pkg/router"
)

// Component names of the application pages.
const (
	LoginPage         = "LoginPage"
	CreateAccountPage = "CreateAccountPage"
	TestPage          = "TestPage"
	MainPage          = "MainPage"
	ProjectListPage   = "ProjectList"
	SettingPage       = "Setting"
	ViewerPage        = "BIMViewer"
	DashboardPage     = "ProjectDashboard"
	ExplorerPage      = "FileExplorer"
	NotFoundPage      = "NotFound"
)

// Capture names used by the table.
const (
	ProjectNameParam = "projectName"
	SubPathParam     = "subPath"
	PathMatchParam   = "pathMatch"
)

// NotFoundView is what the default not-found loader yields.
type NotFoundView struct {
	Title   string
	Message string
}

func loadDefaultNotFound(context.Context) (any, error) {
	return NotFoundView{
		Title:   "Page not found",
		Message: "The page you are looking for does not exist.",
	}, nil
}

// Routes returns the application route table. Each call returns a fresh
// table with its own lazy not-found component. Route names are State names.
func Routes() []router.Route {
	return routes(loadDefaultNotFound)
}

func routes(loadNotFound router.LoadFunc) []router.Route {
	return []router.Route{
		{Path: "/", Name: Unauthenticated.String(), Component: router.Page(LoginPage)},
		{Path: "/create_account", Name: Unauthenticated.String(), Component: router.Page(CreateAccountPage)},
		{Path: "/test", Name: Sandbox.String(), Component: router.Page(TestPage)},
		{Path: "/main", Component: router.Page(MainPage), Children: []router.Route{
			{Path: "project", Name: ProjectList.String(), Component: router.Page(ProjectListPage)},
			{Path: "setting", Name: Settings.String(), Component: router.Page(SettingPage)},
			{Path: "viewer", Name: Viewer.String(), Component: router.Page(ViewerPage)},
			{Path: "project/:" + ProjectNameParam, Name: ProjectDashboard.String(), Component: router.Page(DashboardPage)},
			{Path: "files/*" + SubPathParam, Name: FileExplorer.String(), Component: router.Page(ExplorerPage)},
			{Path: "", Name: AuthenticatedRoot.String(), Redirect: "/main/project"},
		}},
		{Path: "/*" + PathMatchParam, Name: NotFound.String(), Component: router.Lazy(NotFoundPage, loadNotFound)},
	}
}
