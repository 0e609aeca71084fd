package tmux

import (
	"strconv"
	"strings"
	"time"
)

// Session is one line of tmux list-sessions output.
type Session struct {
	Name     string
	Windows  int
	Created  time.Time
	Attached bool
	Group    string
}

// ParseSessions parses list-sessions output in listFormat. It never fails:
// blank lines are dropped, missing trailing fields default to zero values,
// and unparsable numerics degrade to 0. A malformed line still yields a
// record keyed on whatever leading field is present.
func ParseSessions(output string) []Session {
	if strings.TrimSpace(output) == "" {
		return nil
	}

	var sessions []Session
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")

		s := Session{Name: parts[0]}
		if len(parts) > 1 {
			s.Windows = atoiOrZero(parts[1])
		}
		if len(parts) > 2 {
			if epoch := atoi64OrZero(parts[2]); epoch > 0 {
				s.Created = time.Unix(epoch, 0)
			}
		}
		if len(parts) > 3 {
			s.Attached = parts[3] == "1"
		}
		if len(parts) > 4 {
			s.Group = parts[4]
		}
		sessions = append(sessions, s)
	}
	return sessions
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func atoi64OrZero(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
