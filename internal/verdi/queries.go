package verdi

// QueryKind distinguishes tabular from free-text output.
type QueryKind int

const (
	// KindTable output is parsed into headers/rows/footer.
	KindTable QueryKind = iota
	// KindBullets output is a "* item" listing.
	KindBullets
	// KindText output is rendered verbatim.
	KindText
)

// Query is a fully-formed read-only verdi invocation.
type Query struct {
	Name string   // short name for error messages ("process list")
	Args []string // argv after the verdi binary
	Kind QueryKind
}

// The fixed query set. Each dashboard panel owns one or more of these
// as its tabs; the first listed is the panel's default view.
var (
	QueryComputers = Query{Name: "computer list", Args: []string{"computer", "list", "-r", "-a"}, Kind: KindBullets}
	QueryPlugins   = Query{Name: "plugin list", Args: []string{"plugin", "list"}, Kind: KindBullets}
	QueryProcesses = Query{Name: "process list", Args: []string{"process", "list"}, Kind: KindTable}
	QueryCalcjobs  = Query{Name: "calcjob", Args: []string{"calcjob", "--help"}, Kind: KindText}
	QueryGroups    = Query{Name: "group list", Args: []string{"group", "list"}, Kind: KindTable}
	QueryNodes     = Query{Name: "node list", Args: []string{"node", "list"}, Kind: KindTable}
	QueryCodes     = Query{Name: "code list", Args: []string{"code", "list"}, Kind: KindTable}
	QueryProfiles  = Query{Name: "profile list", Args: []string{"profile", "list"}, Kind: KindBullets}
	QueryConfig    = Query{Name: "config list", Args: []string{"config", "list"}, Kind: KindText}
	QueryStatus    = Query{Name: "status", Args: []string{"status"}, Kind: KindText}
	QueryDaemon    = Query{Name: "daemon status", Args: []string{"daemon", "status"}, Kind: KindText}
	QueryStorage   = Query{Name: "storage info", Args: []string{"storage", "info"}, Kind: KindText}
)

// KillArgs builds the one in-scope mutating invocation: terminate a process
// by its primary key. The pk must already be validated as a row identifier.
func KillArgs(pk string) []string {
	return []string{"process", "kill", pk}
}
