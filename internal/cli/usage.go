package cli

const usage = `Usage:
  psrlint [check]
  psrlint check [ROOT] [--format table|json|sarif] [--config PATH] [--workers N]

Options:
  --format table|json|sarif  Output format (default: table)
  --config PATH              Config file path (default: probe the project root)
  --workers N                Parallel validation workers (default: CPU count)
  -h, --help                 Show this help text
`

func Usage() string {
	return usage
}
