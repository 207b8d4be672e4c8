package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"BitSense/internal/domain/models"
	"BitSense/pkg/staleness"
	"BitSense/pkg/util"
)

// Styles.
var (
	upColor     = lipgloss.Color("10")
	downColor   = lipgloss.Color("9")
	sampleColor = lipgloss.Color("11")
	accentColor = lipgloss.Color("12")
	dimColor    = lipgloss.Color("245")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 1)
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(sampleColor).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	panelTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	liveBadgeStyle   = lipgloss.NewStyle().Foreground(upColor)
	sampleBadgeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(sampleColor)
	staleStyle       = lipgloss.NewStyle().Foreground(downColor)
	dimStyle         = lipgloss.NewStyle().Foreground(dimColor)
	upStyle          = lipgloss.NewStyle().Foreground(upColor)
	downStyle        = lipgloss.NewStyle().Foreground(downColor)
	sparkStyle       = lipgloss.NewStyle().Foreground(accentColor)
	footerStyle      = lipgloss.NewStyle().Foreground(dimColor).Padding(0, 1)
)

const maxPredictionRows = 8

// renderBoard draws the whole screen. now is a parameter so rendering stays
// deterministic under test.
func renderBoard(b models.Board, staleAfter time.Duration, width int, now time.Time) string {
	if width < 60 {
		width = 60
	}
	inner := width - 6

	sections := []string{
		titleStyle.Render(fmt.Sprintf("BitSense · BTC prediction board · updated %s", updatedLabel(b.UpdatedAt, now))),
	}
	if b.HasGolden() {
		sections = append(sections, bannerStyle.Render("SAMPLE DATA · upstream unreachable, showing generated dataset"))
	}
	sections = append(sections,
		renderPrices(b.Prices, staleAfter, inner, now),
		renderSentiment(b.Sentiment, b.Confidence, staleAfter, inner, now),
		renderPredictions(b.Predictions, staleAfter, inner, now),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderStatistics(b.Statistics, staleAfter, inner/2, now),
			renderRetrain(b.Retrain, staleAfter, inner-inner/2, now),
		),
		footerStyle.Render("q quit · r refresh now"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func updatedLabel(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return staleness.AgeLabelAt(t, now)
}

// panelHeader renders "NAME badge age". Golden panels read SAMPLE, snapshot
// hydrations read CACHED, fresh fetches read LIVE. Ages past the stale window
// turn red.
func panelHeader[T any](name string, p models.Panel[T], staleAfter time.Duration, now time.Time) string {
	title := panelTitleStyle.Render(name)
	if p.Empty() {
		return title + "  " + dimStyle.Render("no data")
	}

	var badge string
	switch {
	case p.IsGolden():
		badge = sampleBadgeStyle.Render(" SAMPLE ")
	case p.FromCache:
		badge = dimStyle.Render("CACHED")
	default:
		badge = liveBadgeStyle.Render("LIVE")
	}

	age := staleness.AgeLabelAt(p.AsOf, now)
	ageText := dimStyle.Render(age)
	if staleness.StaleAt(p.AsOf, staleAfter, now) {
		ageText = staleStyle.Render(age + " · stale")
	}
	return title + "  " + badge + "  " + ageText
}

func renderPrices(p models.Panel[models.PriceHistory], staleAfter time.Duration, width int, now time.Time) string {
	lines := []string{panelHeader("PRICE", p, staleAfter, now)}

	h := p.Data
	if h.LatestPrice == nil {
		lines = append(lines, dimStyle.Render("awaiting first quote"))
	} else {
		quote := fmt.Sprintf("%s  $%.2f", h.Symbol, *h.LatestPrice)
		if n := len(h.Data); n > 0 && h.Data[n-1].Change24h != nil {
			quote += "  " + changeLabel(*h.Data[n-1].Change24h)
		}
		lines = append(lines, quote)
	}

	if len(h.Data) > 1 {
		prices := make([]float64, len(h.Data))
		for i, pt := range h.Data {
			prices[i] = pt.Price
		}
		lines = append(lines,
			sparkStyle.Render(sparkline(prices, width-4)),
			dimStyle.Render(fmt.Sprintf("%d samples · last %dh", h.Count, h.Hours)),
		)
	}
	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func changeLabel(pct float64) string {
	text := fmt.Sprintf("%+.2f%% 24h", pct)
	if pct < 0 {
		return downStyle.Render(text)
	}
	return upStyle.Render(text)
}

func renderSentiment(p models.Panel[models.SentimentTimeline], conf models.Panel[models.ConfidenceBundle], staleAfter time.Duration, width int, now time.Time) string {
	gaugeW := width - 24
	if gaugeW < 11 {
		gaugeW = 11
	}

	lines := []string{
		panelHeader("SENTIMENT", p, staleAfter, now),
		sentimentLine("vader", p.Data.Vader, gaugeW),
		sentimentLine("finbert", p.Data.Finbert, gaugeW),
	}
	if c := confidenceLine(conf.Data); c != "" {
		lines = append(lines, dimStyle.Render(c))
	}
	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func sentimentLine(name string, s models.SentimentSeries, gaugeW int) string {
	if s.LatestScore == nil {
		return fmt.Sprintf("%-8s %s", name, dimStyle.Render("no samples"))
	}
	score := *s.LatestScore
	style := upStyle
	if score < 0 {
		style = downStyle
	}
	return fmt.Sprintf("%-8s %s %s", name, gauge(score, gaugeW), style.Render(fmt.Sprintf("%+.2f", score)))
}

// confidenceLine pulls the headline values out of the derived confidence
// series; empty until at least one prediction carries a confidence.
func confidenceLine(c models.ConfidenceBundle) string {
	parts := make([]string, 0, 2)
	if c.Vader.Latest != nil {
		parts = append(parts, fmt.Sprintf("vader %.0f%%", *c.Vader.Latest*100))
	}
	if c.Finbert.Latest != nil {
		parts = append(parts, fmt.Sprintf("finbert %.0f%%", *c.Finbert.Latest*100))
	}
	if len(parts) == 0 {
		return ""
	}
	return "model confidence: " + strings.Join(parts, " · ")
}

func renderPredictions(p models.Panel[models.RecentPredictions], staleAfter time.Duration, width int, now time.Time) string {
	lines := []string{
		panelHeader("RECENT PREDICTIONS", p, staleAfter, now),
		dimStyle.Render(fmt.Sprintf("%-7s %-10s %-15s %-5s %6s  %s", "TIME", "SOURCE", "MODEL", "CALL", "CONF", "OUTCOME")),
	}

	preds := p.Data.Predictions
	if len(preds) == 0 {
		lines = append(lines, dimStyle.Render("no predictions yet"))
	}
	if len(preds) > maxPredictionRows {
		preds = preds[:maxPredictionRows]
	}
	for _, pr := range preds {
		lines = append(lines, predictionRow(pr))
	}
	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// predictionRow pads cells before styling them; styling first would count
// escape sequences against the column width.
func predictionRow(pr models.PredictionLog) string {
	clock := "--:--"
	if at := util.ParseTimeDefault(pr.PredictedAt, time.Time{}); !at.IsZero() {
		clock = at.Format("15:04")
	}

	call, callStyle := "DOWN", downStyle
	if pr.Up() {
		call, callStyle = "UP", upStyle
	}

	outcome, outcomeStyle := "pending", dimStyle
	if pr.Graded() {
		if *pr.PredictionCorrect {
			outcome, outcomeStyle = "correct", upStyle
		} else {
			outcome, outcomeStyle = "missed", downStyle
		}
	}

	return fmt.Sprintf("%-7s %-10s %-15s %s %s  %s",
		clock,
		pr.FeatureSet,
		pr.ModelType,
		callStyle.Render(fmt.Sprintf("%-5s", call)),
		fmt.Sprintf("%5.0f%%", pr.Confidence*100),
		outcomeStyle.Render(outcome),
	)
}

func renderStatistics(p models.Panel[models.StatisticsResponse], staleAfter time.Duration, width int, now time.Time) string {
	s := p.Data.Statistics

	acc := dimStyle.Render("n/a")
	if s.OverallAccuracy != nil {
		acc = fmt.Sprintf("%.1f%%", *s.OverallAccuracy*100)
	}

	lines := []string{
		panelHeader("STATISTICS", p, staleAfter, now),
		fmt.Sprintf("predictions  %d (graded %d, pending %d)", s.TotalPredictions, s.PredictionsWithOutcomes, s.PendingOutcomes),
		fmt.Sprintf("accuracy     %s (%d correct)", acc, s.CorrectPredictions),
		fmt.Sprintf("per model    vader %d · finbert %d", s.VaderPredictions, s.FinbertPredictions),
	}
	if s.AvgResponseTimeMs != nil {
		lines = append(lines, fmt.Sprintf("avg response %.0fms", *s.AvgResponseTimeMs))
	}
	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderRetrain(p models.Panel[models.RetrainStatus], staleAfter time.Duration, width int, now time.Time) string {
	lines := []string{
		panelHeader("RETRAIN", p, staleAfter, now),
		retrainLine("vader", p.Data.Status.Vader),
		retrainLine("finbert", p.Data.Status.Finbert),
	}
	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func retrainLine(name string, s models.RetrainModelStatus) string {
	if s.ShouldRetrain {
		reason := "threshold hit"
		if len(s.Reasons) > 0 {
			reason = s.Reasons[0]
		}
		return fmt.Sprintf("%-8s %s", name, staleStyle.Render("due · "+reason))
	}
	return fmt.Sprintf("%-8s %s", name, upStyle.Render(fmt.Sprintf("ok · data %d/%d", s.DataAvailable, s.DataRequired)))
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline down-samples points into width buckets and maps each bucket's
// mean onto the eight block runes. A flat series renders mid-height.
func sparkline(points []float64, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}
	if width > len(points) {
		width = len(points)
	}

	buckets := make([]float64, width)
	for i := range buckets {
		lo := i * len(points) / width
		hi := (i + 1) * len(points) / width
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range points[lo:hi] {
			sum += v
		}
		buckets[i] = sum / float64(hi-lo)
	}

	min, max := buckets[0], buckets[0]
	for _, v := range buckets[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]rune, width)
	for i, v := range buckets {
		idx := len(sparkRunes) / 2
		if max > min {
			idx = int((v - min) / (max - min) * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

// gauge maps a [-1, 1] score onto a fixed-width track with a marker, midpoint
// ticked. The caller colors the numeric label, not the track.
func gauge(score float64, width int) string {
	if width < 3 {
		width = 3
	}
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	marker := int((score + 1) / 2 * float64(width-1))

	out := make([]rune, width)
	for i := range out {
		switch {
		case i == marker:
			out[i] = '█'
		case i == width/2:
			out[i] = '┊'
		default:
			out[i] = '─'
		}
	}
	return string(out)
}
