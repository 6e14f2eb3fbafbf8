package model

// Declaration is one agency/line pair read from a descriptor file.
type Declaration struct {
	Agency   string
	Line     string
	LogoPath string // lines_picto.csv only
	Source   string // file the declaration came from
}

// LogoRef is a declared logo path and where it is expected on disk.
type LogoRef struct {
	Logo      string
	Source    string
	LocalPath string
}

// RouteSet holds the route_id values of one GTFS feed.
type RouteSet map[string]struct{}

// Has reports whether id is a known route.
func (r RouteSet) Has(id string) bool {
	_, ok := r[id]
	return ok
}
