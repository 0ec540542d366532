package repo

// Target is a directory an app can be launched in.
type Target interface {
	TargetName() string
	TargetPath() string
	Exists() bool
}

var (
	_ Target = Repo{}
	_ Target = Scratchpad{}
	_ Target = Temp{}
)
