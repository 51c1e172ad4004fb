// Package flagx splits a command line between independent flag consumers.
// The configuration loader takes the flags it owns with FilterArgs, and the
// command tree receives everything else via ExcludeArgs.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns only the allowed flags from args, together with their
// values. Both "-c conf.json" and "-c=conf.json" forms are recognised; a value
// is taken from the next argument only when it does not itself look like a flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := toSet(allowedFlags)
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, ok := splitInline(arg); ok {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if hasValue(args, i) {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ExcludeArgs is the complement of FilterArgs: it drops the given flags (and
// their values) and keeps every other argument in order.
func ExcludeArgs(args []string, excludedFlags []string) []string {
	excluded := toSet(excludedFlags)
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, ok := splitInline(arg); ok {
			if _, ok := excluded[name]; !ok {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := excluded[arg]; ok {
			if hasValue(args, i) {
				i++
			}
			continue
		}
		rest = append(rest, arg)
	}

	return rest
}

// ConfigFileFlag extracts the JSON config path given with -c or -config.
// An empty string means no config file was requested.
func ConfigFileFlag(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func splitInline(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") || !strings.Contains(arg, "=") {
		return "", false
	}
	return strings.SplitN(arg, "=", 2)[0], true
}

func hasValue(args []string, i int) bool {
	return i+1 < len(args) && !strings.HasPrefix(args[i+1], "-")
}
