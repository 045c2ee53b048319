package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/vanderheijden86/jspgantt/pkg/gantt"
	"github.com/vanderheijden86/jspgantt/pkg/palette"
)

// WriteHTML renders c as a self-contained page: the SVG chart plus a small
// script that reproduces the pointer-motion highlighting of the terminal
// view (bold hovered bar, red outline on same-job bars, status line that
// keeps its last value).
func WriteHTML(w io.Writer, c *gantt.Chart, width int) error {
	if c == nil {
		return fmt.Errorf("nil chart")
	}
	var chartSVG bytes.Buffer
	if err := WriteSVG(&chartSVG, c, width); err != nil {
		return err
	}
	return htmlTemplate.Execute(w, struct {
		Title  string
		Status string
		SVG    template.HTML
		Bold   string
		Red    string
	}{
		Title:  c.Title,
		Status: c.Status(),
		SVG:    template.HTML(chartSVG.String()),
		Bold:   palette.Hex(colorBold),
		Red:    palette.Hex(colorHighlight),
	})
}

var htmlTemplate = template.Must(template.New("gantt").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: serif; margin: 16px; background: #fff; }
#status { font-family: monospace; min-height: 1.4em; margin-bottom: 8px; color: #333; }
g.op { cursor: pointer; }
</style>
</head>
<body>
<div id="status">{{.Status}}</div>
<div id="chart">{{.SVG}}</div>
<script>
(function () {
  var ops = Array.prototype.slice.call(document.querySelectorAll("#chart g.op"));
  var status = document.getElementById("status");
  function jobOf(g) {
    var m = g.getAttribute("class").match(/job-(\d+)/);
    return m ? m[1] : "";
  }
  function clear() {
    ops.forEach(function (g) {
      var r = g.querySelector("rect");
      r.style.stroke = "none";
      r.style.strokeWidth = "0";
    });
  }
  function hover(g) {
    var job = jobOf(g);
    ops.forEach(function (o) {
      var r = o.querySelector("rect");
      if (o === g) {
        r.style.stroke = {{.Bold}};
        r.style.strokeWidth = "3";
      } else if (jobOf(o) === job) {
        r.style.stroke = {{.Red}};
        r.style.strokeWidth = "2";
      } else {
        r.style.stroke = "none";
        r.style.strokeWidth = "0";
      }
    });
    status.textContent = g.querySelector("title").textContent;
  }
  var chart = document.getElementById("chart");
  chart.addEventListener("mousemove", function (e) {
    var g = e.target.closest ? e.target.closest("g.op") : null;
    if (g) {
      hover(g);
    } else {
      clear();
    }
  });
  chart.addEventListener("mouseleave", clear);
})();
</script>
</body>
</html>
`))

