package server

// Route path constants
const (
	RouteIndex     = "/"
	RouteLogin     = "/login"
	RouteCallback  = "/oauth/callback"
	RouteDashboard = "/dashboard"
)
