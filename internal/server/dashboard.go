package server

import (
	"html/template"
	"net/http"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>E-commerce Analytics</title>
<style>
body { font-family: -apple-system, Helvetica, Arial, sans-serif; margin: 2rem; background: #f7f7f9; color: #222; }
h1 { font-size: 1.4rem; }
.cards { display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 2rem; }
.card { background: #fff; border-radius: 8px; padding: 1rem 1.5rem; box-shadow: 0 1px 3px rgba(0,0,0,.1); min-width: 10rem; }
.card .label { color: #777; font-size: .8rem; text-transform: uppercase; }
.card .value { font-size: 1.5rem; font-weight: 600; margin-top: .25rem; }
table { border-collapse: collapse; background: #fff; box-shadow: 0 1px 3px rgba(0,0,0,.1); margin-bottom: 2rem; }
th, td { padding: .4rem .9rem; text-align: left; border-bottom: 1px solid #eee; font-size: .9rem; }
th { background: #fafafa; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
.muted { color: #999; }
</style>
</head>
<body>
<h1>E-commerce Analytics</h1>

<div class="cards">
  <div class="card"><div class="label">Total revenue</div><div class="value" id="total-revenue">{{.Metrics.TotalRevenue}}</div></div>
  <div class="card"><div class="label">Orders</div><div class="value" id="total-orders">{{.Metrics.TotalOrders}}</div></div>
  <div class="card"><div class="label">Avg order value</div><div class="value" id="avg-order-value">{{if .Metrics.AvgOrderValue}}{{.Metrics.AvgOrderValue}}{{else}}&mdash;{{end}}</div></div>
  <div class="card"><div class="label">Customers</div><div class="value" id="unique-customers">{{.Metrics.UniqueCustomers}}</div></div>
</div>

<h2>Monthly sales</h2>
<table>
<tr><th>Month</th><th>Revenue</th><th>Orders</th><th>Growth %</th></tr>
{{range .Monthly}}
<tr><td>{{.Month}}</td><td class="num">{{.Revenue}}</td><td class="num">{{.Orders}}</td>
<td class="num">{{if .Growth}}{{printf "%.1f" .Growth}}{{else}}<span class="muted">n/a</span>{{end}}</td></tr>
{{end}}
</table>

<h2>Category performance</h2>
<table>
<tr><th>Category</th><th>Revenue</th><th>Orders</th><th>Avg order</th></tr>
{{range .Categories}}
<tr><td>{{.Category}}</td><td class="num">{{.Revenue}}</td><td class="num">{{.OrderCount}}</td><td class="num">{{.AvgOrderValue}}</td></tr>
{{end}}
</table>

<h2>Customer segments</h2>
<table>
<tr><th>Segment</th><th>Customers</th><th>Avg spend</th><th>Avg orders</th></tr>
{{range .Segments}}
<tr><td>{{.Segment}}</td><td class="num">{{.CustomerCount}}</td><td class="num">{{.AvgSpend}}</td><td class="num">{{printf "%.1f" .AvgOrders}}</td></tr>
{{end}}
</table>

<h2>Recent orders</h2>
<table>
<tr><th>Order</th><th>Customer</th><th>Date</th><th>Product</th><th>Total</th></tr>
{{range .Recent}}
<tr><td>{{.OrderID}}</td><td>{{.CustomerID}}</td><td>{{.OrderDate}}</td><td>{{.ProductName}}</td><td class="num">{{.TotalAmount}}</td></tr>
{{end}}
</table>

<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var m = JSON.parse(ev.data);
    document.getElementById("total-revenue").textContent = m.total_revenue;
    document.getElementById("total-orders").textContent = m.total_orders;
    document.getElementById("avg-order-value").textContent = m.avg_order_value === null ? "—" : m.avg_order_value;
    document.getElementById("unique-customers").textContent = m.unique_customers;
  };
})();
</script>
</body>
</html>
`))

type dashboardData struct {
	Metrics    metricsResponse
	Monthly    []monthlyEntry
	Categories []categoryEntry
	Segments   []segmentEntry
	Recent     []recentOrderEntry
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	summary, err := s.summarize(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	recent, err := s.orders.GetRecent(r.Context(), s.cfg.TopN)
	if err != nil {
		s.serverError(w, err)
		return
	}

	data := dashboardData{Metrics: toMetricsResponse(summary)}
	for _, m := range summary.Monthly {
		data.Monthly = append(data.Monthly, monthlyEntry{Month: m.Month, Revenue: m.Revenue, Orders: m.OrderCount, Growth: m.Growth})
	}
	for _, c := range summary.Categories {
		data.Categories = append(data.Categories, categoryEntry{Category: c.Category, Revenue: c.Revenue, OrderCount: c.OrderCount, AvgOrderValue: c.AvgOrderValue})
	}
	for _, seg := range summary.Segments {
		data.Segments = append(data.Segments, segmentEntry{Segment: seg.Segment, CustomerCount: seg.CustomerCount, AvgSpend: seg.AvgSpend, AvgOrders: seg.AvgOrders})
	}
	for _, o := range recent {
		data.Recent = append(data.Recent, recentOrderEntry{OrderID: o.OrderID, CustomerID: o.CustomerID, OrderDate: o.OrderDate.Format("2006-01-02"), TotalAmount: o.TotalAmount, ProductName: o.ProductName})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.logger.Printf("render dashboard: %v", err)
	}
}
