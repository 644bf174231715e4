package sim

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// confidence is the level of the hit rate interval.
const confidence = 0.95

// CI is a closed interval.
type CI struct {
	Lo float64
	Hi float64
}

// Report aggregates the boards of one run.
type Report struct {
	Preset  string
	Policy  Policy
	Boards  []BoardResult
	Elapsed time.Duration

	Attempts    int
	Accepted    int
	Reverted    int
	Stuck       int // boards that ran out of moves
	Violations  int
	Refills     int
	Spawned     int
	TilesBroken int
	Fallbacks   int

	HitRate     float64 // accepted / attempts
	HitCI       CI
	RoundsMean  float64
	RoundsStd   float64
	RoundsMax   int
	ClearedMean float64
	ClearedStd  float64
}

func newReport(preset string, policy Policy, boards []BoardResult, elapsed time.Duration) Report {
	r := Report{Preset: preset, Policy: policy, Boards: boards, Elapsed: elapsed}
	var rounds, cleared []float64
	for _, b := range boards {
		r.Attempts += b.Attempts
		r.Accepted += b.Accepted
		r.Reverted += b.Reverted
		r.Violations += b.Violations
		r.Refills += b.Refills
		r.Spawned += b.Spawned
		r.TilesBroken += b.TilesBroken
		r.Fallbacks += b.Fallbacks
		if b.Stuck {
			r.Stuck++
		}
		for _, n := range b.Rounds {
			rounds = append(rounds, float64(n))
			r.RoundsMax = max(r.RoundsMax, n)
		}
		for _, n := range b.Cleared {
			cleared = append(cleared, float64(n))
		}
	}
	r.HitRate, r.HitCI = proportionCI(r.Accepted, r.Attempts, confidence)
	r.RoundsMean, r.RoundsStd = meanStd(rounds)
	r.ClearedMean, r.ClearedStd = meanStd(cleared)
	return r
}

func meanStd(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

// proportionCI returns k/n with its Clopper-Pearson interval.
func proportionCI(k, n int, level float64) (float64, CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - level
	var ci CI
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return float64(k) / float64(n), ci
}

// String renders the summary table.
func (r Report) String() string {
	p := message.NewPrinter(language.English)
	keys := []string{
		"Policy", "Boards", "Swaps tried", "Matched", "Reverted", "Hit rate",
		"Rounds / swap", "Longest chain", "Cleared / swap", "Refills", "Spawned",
		"Tiles broken", "Fill fallbacks", "Boards stuck", "Unsettled", "Elapsed",
	}
	msg := map[string]string{
		"Policy":         string(r.Policy),
		"Boards":         p.Sprintf("%d", len(r.Boards)),
		"Swaps tried":    p.Sprintf("%d", r.Attempts),
		"Matched":        p.Sprintf("%d", r.Accepted),
		"Reverted":       p.Sprintf("%d", r.Reverted),
		"Hit rate":       p.Sprintf("%.2f%% [%.2f%%, %.2f%%]", r.HitRate*100, r.HitCI.Lo*100, r.HitCI.Hi*100),
		"Rounds / swap":  p.Sprintf("%.3f ± %.3f", r.RoundsMean, r.RoundsStd),
		"Longest chain":  p.Sprintf("%d", r.RoundsMax),
		"Cleared / swap": p.Sprintf("%.2f ± %.2f", r.ClearedMean, r.ClearedStd),
		"Refills":        p.Sprintf("%d", r.Refills),
		"Spawned":        p.Sprintf("%d", r.Spawned),
		"Tiles broken":   p.Sprintf("%d", r.TilesBroken),
		"Fill fallbacks": p.Sprintf("%d", r.Fallbacks),
		"Boards stuck":   p.Sprintf("%d", r.Stuck),
		"Unsettled":      p.Sprintf("%d", r.Violations),
		"Elapsed":        r.Elapsed.Round(time.Millisecond).String(),
	}
	return fmtTable(r.Preset, keys, msg)
}

// DumpBoards writes the final board of every simulated game.
func (r Report) DumpBoards(w io.Writer) error {
	for _, b := range r.Boards {
		if _, err := fmt.Fprintf(w, "board %d seed %d\n%s\n", b.Index, b.Seed, b.Final); err != nil {
			return err
		}
	}
	return nil
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(msg[k]))
	}
	keyW += 2
	valW += 2
	titleW := runewidth.StringWidth(title)
	valW = max(valW, titleW-keyW-1)

	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"
	inner := keyW + valW + 1
	left := (inner - titleW) / 2
	right := inner - titleW - left

	var sb strings.Builder
	sb.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		sb.WriteString("| " + k + blank(keyW-2-runewidth.StringWidth(k)) +
			" | " + v + blank(valW-2-runewidth.StringWidth(v)) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
