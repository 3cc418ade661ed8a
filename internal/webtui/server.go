// Package webtui serves the terminal dashboard to a browser: each WebSocket
// connection runs `trackup` under a pty and relays it to xterm.js.
package webtui

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
)

const terminalHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TrackUp</title>
<link rel="stylesheet" href="{{.XtermBase}}/css/xterm.css">
<style>
html, body { margin: 0; height: 100%; background: #1e1e2e; }
#term { position: absolute; inset: 0; padding: 4px; }
</style>
</head>
<body>
<div id="term"></div>
<script src="{{.XtermBase}}/lib/xterm.js"></script>
<script src="{{.FitBase}}/lib/addon-fit.js"></script>
<script>
(function () {
  const term = new Terminal({cursorBlink: true, fontFamily: "monospace"});
  const fit = new FitAddon.FitAddon();
  term.loadAddon(fit);
  term.open(document.getElementById("term"));
  fit.fit();

  const proto = location.protocol === "https:" ? "wss:" : "ws:";
  const ws = new WebSocket(proto + "//" + location.host + "/ws");
  ws.binaryType = "arraybuffer";
  const resize = () => {
    fit.fit();
    if (ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify({type: "resize", cols: term.cols, rows: term.rows}));
    }
  };
  ws.onopen = resize;
  ws.onmessage = (ev) => term.write(typeof ev.data === "string" ? ev.data : new Uint8Array(ev.data));
  ws.onclose = () => term.write("\r\n[session closed]\r\n");
  term.onData((d) => ws.send(d));
  window.addEventListener("resize", resize);
})();
</script>
</body>
</html>
`

type ServerConfig struct {
	Addr string
	// Args are passed to the child `trackup` process (no subcommand).
	Args []string
	// Executable defaults to the running binary.
	Executable string
	// XtermBase and FitBase locate the xterm.js packages.
	XtermBase string
	FitBase   string
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("webtui: missing addr")
	}
	if cfg.XtermBase == "" {
		cfg.XtermBase = "https://cdn.jsdelivr.net/npm/@xterm/xterm@5.5.0"
	}
	if cfg.FitBase == "" {
		cfg.FitBase = "https://cdn.jsdelivr.net/npm/@xterm/addon-fit@0.10.0"
	}
	tmpl, err := template.New("terminal").Parse(terminalHTML)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, tmpl: tmpl}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/terminal", http.StatusFound)
	})
	mux.HandleFunc("GET /terminal", s.handleTerminal)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, s.cfg); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
