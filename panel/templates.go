package panel

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const (
	pollIntervalMillis = 500
	contentPath        = "/panel/content"
)

// Page is the full panel document. It polls the content fragment and swaps
// it in when the revision changes, so a browser tab or an editor webview can
// host it as is.
func Page() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>errorparty</title>
<style>
html, body { margin: 0; height: 100%; background: transparent; }
#panel { display: flex; align-items: center; justify-content: center; height: 100%; }
#panel img { max-width: 100%; max-height: 100%; }
</style>
</head>
<body>
`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div id="panel"></div>`+"\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<script>
(function () {
  var panel = document.getElementById("panel");
  var revision = -1;
  function refresh() {
    fetch(%q, { cache: "no-store" })
      .then(function (r) { return r.text(); })
      .then(function (html) {
        var m = html.match(/data-revision="(\d+)"/);
        var next = m ? Number(m[1]) : -1;
        if (next !== revision) {
          revision = next;
          panel.innerHTML = html;
        }
      })
      .catch(function () {});
  }
  refresh();
  setInterval(refresh, %d);
})();
</script>
`, contentPath, pollIntervalMillis); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

// Content renders a single frame: one image or nothing.
func Content(f Frame) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if f.ImageURL == "" {
			_, err := fmt.Fprintf(w, `<div class="blank" data-revision="%d"></div>`, f.Revision)
			return err
		}
		_, err := fmt.Fprintf(w, `<img src="%s" alt="celebration" data-revision="%d">`,
			templ.EscapeString(string(templ.URL(f.ImageURL))), f.Revision)
		return err
	})
}
