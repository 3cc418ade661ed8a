package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"trackup/internal/cli"
)

func isMemberRef(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "@") && len(s) > 1
}

// rewriteMemberLookupArgs turns `trackup @<name>` into
// `trackup members show <name>`. Cobra treats the first positional token as a
// subcommand, so argv is rewritten before parsing; persistent flags may come
// first.
func rewriteMemberLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value.
	valueFlags := map[string]bool{
		"--server":     true,
		"--timeout":    true,
		"--config":     true,
		"--format":     true,
		"--log-level":  true,
		"--log-format": true,
		"--log-file":   true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "members", "show", strings.TrimPrefix(strings.TrimSpace(argv[i]), "@"))
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isMemberRef(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isMemberRef(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteMemberLookupArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
