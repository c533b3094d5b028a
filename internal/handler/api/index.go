package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func nowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// Index serves a small form that drives POST /analyze from the browser.
func (h *AnalysisHandler) Index(c echo.Context) error {
	return c.HTML(http.StatusOK, indexPage)
}

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Futures Market Analysis</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 640px; margin: 40px auto; padding: 0 16px; background: #1b1e23; color: #e6e6e6; }
  label { display: block; margin-top: 12px; }
  input, select { width: 100%; padding: 6px; margin-top: 4px; background: #2a2e35; color: #e6e6e6; border: 1px solid #444; border-radius: 4px; }
  button { margin-top: 16px; padding: 8px 20px; background: #3b6fd4; color: #fff; border: none; border-radius: 4px; cursor: pointer; }
  pre { background: #111317; padding: 12px; border-radius: 4px; overflow-x: auto; }
</style>
</head>
<body>
<h1>Futures Market Analysis</h1>
<p>Detects potential exhaustion signals from term structure and market conditions.</p>
<form id="f">
  <label>Front month ticker
    <input name="ticker_front" value="GC=F" required>
  </label>
  <label>Next month ticker
    <input name="ticker_next" value="GCM24.CMX" required>
  </label>
  <label>Physical demand
    <select name="physical_demand">
      <option value="declining">declining</option>
      <option value="stable">stable</option>
      <option value="rising">rising</option>
    </select>
  </label>
  <label>
    <input type="checkbox" name="price_breakout" style="width:auto"> Price breakout
  </label>
  <button type="submit">Analyze</button>
</form>
<h2>Result</h2>
<pre id="out">(none yet)</pre>
<script>
document.getElementById('f').addEventListener('submit', async function (ev) {
  ev.preventDefault();
  const fd = new FormData(ev.target);
  const body = {
    ticker_front: fd.get('ticker_front'),
    ticker_next: fd.get('ticker_next'),
    physical_demand: fd.get('physical_demand'),
    price_breakout: fd.get('price_breakout') === 'on'
  };
  const out = document.getElementById('out');
  out.textContent = 'loading...';
  try {
    const resp = await fetch('/analyze', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(body)
    });
    out.textContent = JSON.stringify(await resp.json(), null, 2);
  } catch (err) {
    out.textContent = 'request failed: ' + err;
  }
});
</script>
</body>
</html>
`
