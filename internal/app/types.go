package app

import (
	"runtime"

	"github.com/ben-ranford/psrlint/internal/report"
)

type Mode string

const ModeCheck Mode = "check"

type Request struct {
	Mode     Mode
	RepoPath string
	Check    CheckRequest
}

type CheckRequest struct {
	Format     report.Format
	ConfigPath string
	Workers    int
}

func DefaultRequest() Request {
	return Request{
		Mode:     ModeCheck,
		RepoPath: ".",
		Check: CheckRequest{
			Format:  report.FormatTable,
			Workers: runtime.NumCPU(),
		},
	}
}
