package reporter

import (
	"fmt"
	"html/template"
	"io"
)

// DashboardPage holds the data rendered into the dashboard shell. The
// charts themselves are filled client-side from /api/cost-data.
type DashboardPage struct {
	Title string
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

// RenderDashboard writes the dashboard page.
func RenderDashboard(w io.Writer, page DashboardPage) error {
	if err := dashboardTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.min.js"></script>
    <style>
        :root {
            --bg-dark: #0f172a;
            --bg-card: #1e293b;
            --text-primary: #f1f5f9;
            --text-secondary: #94a3b8;
            --accent-blue: #3b82f6;
            --accent-red: #ef4444;
            --border: #334155;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: 'Inter', -apple-system, BlinkMacSystemFont, sans-serif;
            background: var(--bg-dark);
            color: var(--text-primary);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 1400px; margin: 0 auto; }
        h1 {
            font-size: 2rem;
            margin-bottom: 0.5rem;
            background: linear-gradient(135deg, var(--accent-blue), #8b5cf6);
            -webkit-background-clip: text;
            -webkit-text-fill-color: transparent;
        }
        .controls {
            display: flex;
            gap: 1rem;
            align-items: center;
            margin: 1.5rem 0;
            color: var(--text-secondary);
        }
        select, button, a.export {
            background: var(--bg-card);
            color: var(--text-primary);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 0.5rem 1rem;
            font-size: 0.875rem;
            text-decoration: none;
            cursor: pointer;
        }
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 1rem;
            margin-bottom: 2rem;
        }
        .stat-card {
            background: var(--bg-card);
            border: 1px solid var(--border);
            border-radius: 12px;
            padding: 1.5rem;
        }
        .stat-label { color: var(--text-secondary); font-size: 0.875rem; }
        .stat-value { font-size: 2rem; font-weight: 700; }
        .charts {
            display: grid;
            grid-template-columns: 2fr 1fr;
            gap: 1rem;
        }
        .chart-card {
            background: var(--bg-card);
            border: 1px solid var(--border);
            border-radius: 12px;
            padding: 1.5rem;
        }
        .error { color: var(--accent-red); margin: 1rem 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>

        <div class="controls">
            <label for="timeframe">Timeframe</label>
            <select id="timeframe">
                <option value="daily" selected>Daily</option>
                <option value="weekly">Weekly</option>
                <option value="monthly">Monthly</option>
            </select>
            <label><input type="checkbox" id="use-mock" checked> Use mock data</label>
            <a class="export" id="export-link" href="/export-csv?timeframe=daily">Export CSV</a>
        </div>

        <p class="error" id="error" hidden></p>

        <div class="stats-grid">
            <div class="stat-card">
                <div class="stat-label">Total Cost</div>
                <div class="stat-value" id="total-cost">–</div>
            </div>
            <div class="stat-card">
                <div class="stat-label">Average Cost / Period</div>
                <div class="stat-value" id="average-cost">–</div>
            </div>
            <div class="stat-card">
                <div class="stat-label">Forecasted Monthly Cost</div>
                <div class="stat-value" id="forecast-cost">–</div>
            </div>
        </div>

        <div class="charts">
            <div class="chart-card"><canvas id="trend-chart"></canvas></div>
            <div class="chart-card"><canvas id="distribution-chart"></canvas></div>
        </div>
    </div>

    <script>
        let trendChart = null;
        let distributionChart = null;

        const usd = v => '$' + v.toFixed(2);

        async function refresh() {
            const timeframe = document.getElementById('timeframe').value;
            const useMock = document.getElementById('use-mock').checked;
            document.getElementById('export-link').href = '/export-csv?timeframe=' + timeframe;

            const errorEl = document.getElementById('error');
            errorEl.hidden = true;

            const resp = await fetch('/api/cost-data?timeframe=' + timeframe + '&use_mock_data=' + useMock);
            const body = await resp.json();
            if (!resp.ok) {
                errorEl.textContent = body.error || 'Request failed';
                errorEl.hidden = false;
                return;
            }

            document.getElementById('total-cost').textContent = usd(body.total_cost);
            document.getElementById('average-cost').textContent = usd(body.average_daily_cost);
            document.getElementById('forecast-cost').textContent = usd(body.forecasted_monthly_cost);

            if (trendChart) trendChart.destroy();
            trendChart = new Chart(document.getElementById('trend-chart'), {
                type: 'line',
                data: {
                    labels: body.spending_trend.labels,
                    datasets: [{
                        label: body.spending_trend.title,
                        data: body.spending_trend.data,
                        borderColor: '#3b82f6',
                        backgroundColor: 'rgba(59, 130, 246, 0.2)',
                        fill: true,
                        tension: 0.3
                    }]
                }
            });

            if (distributionChart) distributionChart.destroy();
            distributionChart = new Chart(document.getElementById('distribution-chart'), {
                type: 'doughnut',
                data: {
                    labels: body.resource_distribution.labels,
                    datasets: [{
                        label: body.resource_distribution.title,
                        data: body.resource_distribution.data,
                        backgroundColor: ['#3b82f6', '#22c55e', '#eab308', '#ef4444', '#8b5cf6']
                    }]
                }
            });
        }

        document.getElementById('timeframe').addEventListener('change', refresh);
        document.getElementById('use-mock').addEventListener('change', refresh);
        refresh();
    </script>
</body>
</html>`
