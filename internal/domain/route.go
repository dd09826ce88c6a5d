package domain

import "path"

// Route identifies one of the five site pages.
type Route int

const (
	RouteHome Route = iota
	RouteAbout
	RouteContact
	RouteServices
	RouteQuote
)

var routeFiles = [...]string{
	RouteHome:     "index.html",
	RouteAbout:    "a-propos.html",
	RouteContact:  "contact.html",
	RouteServices: "services.html",
	RouteQuote:    "devis.html",
}

var routeNames = [...]string{
	RouteHome:     "home",
	RouteAbout:    "about",
	RouteContact:  "contact",
	RouteServices: "services",
	RouteQuote:    "devis",
}

// Routes returns every page in navigation order.
func Routes() []Route {
	return []Route{RouteHome, RouteAbout, RouteServices, RouteQuote, RouteContact}
}

// File is the page's public file name, used in links and static builds.
func (r Route) File() string {
	if r < 0 || int(r) >= len(routeFiles) {
		return routeFiles[RouteHome]
	}
	return routeFiles[r]
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(routeNames) {
		return routeNames[RouteHome]
	}
	return routeNames[r]
}

// RouteFromPath maps a request path to a page using its last segment.
// Unknown names, and the empty name, resolve to the home page.
func RouteFromPath(p string) Route {
	switch path.Base(p) {
	case "a-propos.html":
		return RouteAbout
	case "contact.html":
		return RouteContact
	case "services.html":
		return RouteServices
	case "devis.html":
		return RouteQuote
	default:
		return RouteHome
	}
}

// CurrentFile returns the last path segment, "index.html" when empty.
// Navigation links are marked active by comparing their href to it.
func CurrentFile(p string) string {
	base := path.Base(p)
	if base == "/" || base == "." || base == "" {
		return routeFiles[RouteHome]
	}
	return base
}
