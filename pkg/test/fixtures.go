package test

// UsageError is what bbus-call prints to stderr when run without arguments.
const UsageError = "./bbus-call: expected additional parameters\ntry ./bbus-call --help"

// BbusCallScript mimics bbus-call's argument handling: without arguments it
// prints the usage error, naming itself by argv[0], and exits 1.
const BbusCallScript = `if [ $# -eq 0 ]; then
	printf '%s: expected additional parameters\ntry %s --help' "$0" "$0" >&2
	exit 1
fi
if [ "$1" = "--help" ]; then
	echo "Usage: $0 [OPTIONS] <method> [ARGS...]"
	exit 0
fi
echo "$@"`

// SampleConfigYAML returns a sample harness configuration.
func SampleConfigYAML() string {
	return `subject_dir: /opt/busybus/bin
program_prefix: bbus-
timeout: 30s
max_output: 4096
env:
  - BBUS_SOCKET=/tmp/bbus.sock
log_level: debug
`
}

// SampleScenarioYAML returns the invalid-arguments scenario in file form.
func SampleScenarioYAML() string {
	return `name: invalid_args
program: call
retcode: 1
stderr: "./bbus-call: expected additional parameters\ntry ./bbus-call --help"
`
}
