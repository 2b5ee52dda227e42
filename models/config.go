package models

// AnalyzeConfig holds runtime configuration for an analyze run.
// All values come from CLI flags, not external config files.
type AnalyzeConfig struct {
	Folder      string
	OutputDir   string
	LedgerPath  string
	ConfigPath  string
	CacheDir    string
	WorkerCount int
	Force       bool
	Auto        bool
	NoCache     bool
}
