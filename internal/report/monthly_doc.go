package report

import (
	"bytes"
	"encoding/json"
	"html/template"
	"time"
)

// The monthly artifact is a self-contained document: period label, generation
// timestamp, grouped totals and a chart fed by arrays embedded at render time.
// No server is needed to view it.
const monthlyTemplateStr = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Monthly Report {{.Label}}</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
  body { font-family: sans-serif; max-width: 860px; margin: 2rem auto; color: #222; }
  h1 { border-bottom: 2px solid #444; padding-bottom: .3rem; }
  .meta { color: #777; font-size: .85rem; }
  .totals { display: flex; gap: 2rem; margin: 1.5rem 0; }
  .totals div { background: #f5f5f5; border-radius: 8px; padding: 1rem 1.5rem; }
  .totals span { display: block; font-size: 1.6rem; font-weight: bold; }
</style>
</head>
<body>
<h1>Monthly Report — {{.Label}}</h1>
<p class="meta">Generated at {{.GeneratedAt}}</p>
<div class="totals">
  <div>Total Profit<span>{{.TotalProfit}}</span></div>
  <div>Total Revenue<span>{{.TotalRevenue}}</span></div>
  <div>Units Sold<span>{{.TotalQuantity}}</span></div>
</div>
<canvas id="productChart"></canvas>
<script>
new Chart(document.getElementById("productChart"), {
  type: "bar",
  data: {
    labels: {{.Labels}},
    datasets: [
      { label: "Profit", data: {{.Profits}} },
      { label: "Quantity", data: {{.Quantities}} }
    ]
  }
});
</script>
</body>
</html>
`

var monthlyTemplate = template.Must(template.New("monthly").Parse(monthlyTemplateStr))

type monthlyView struct {
	Label         string
	GeneratedAt   string
	TotalProfit   string
	TotalRevenue  string
	TotalQuantity string
	Labels        template.JS
	Profits       template.JS
	Quantities    template.JS
}

func renderMonthly(s *MonthlySummary, generatedAt time.Time) ([]byte, error) {
	labels, err := json.Marshal(s.ChartLabels())
	if err != nil {
		return nil, err
	}
	profits, err := json.Marshal(s.ProfitSeries())
	if err != nil {
		return nil, err
	}
	quantities, err := json.Marshal(s.QuantitySeries())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = monthlyTemplate.Execute(&buf, monthlyView{
		Label:         s.Label,
		GeneratedAt:   generatedAt.Format("2006-01-02 15:04:05"),
		TotalProfit:   s.TotalProfit,
		TotalRevenue:  s.TotalRevenue,
		TotalQuantity: s.TotalQuantity,
		Labels:        template.JS(labels),
		Profits:       template.JS(profits),
		Quantities:    template.JS(quantities),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
