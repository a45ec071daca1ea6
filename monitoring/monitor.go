// Package monitoring serves a playback over HTTP. Viewers watch frames pushed
// over a WebSocket, and clients can post new schedules or stop the playback.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/Pallavi2687/cpu-scheduler-frontend/layout"
	"github.com/Pallavi2687/cpu-scheduler-frontend/monitoring/web"
	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
)

const maxScheduleBody = 1 << 20

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Monitor turns a playback into a web server. It is a playback hook: every
// notification of the registered player becomes a frame pushed to viewers.
type Monitor struct {
	engine     timing.Engine
	player     *playback.Player
	portNumber int
	hub        *frameHub

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
	playbackBar      *ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{hub: newFrameHub()}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that drives the playback.
func (m *Monitor) RegisterEngine(e timing.Engine) {
	m.engine = e
}

// RegisterPlayer registers the player to serve and starts listening to it.
func (m *Monitor) RegisterPlayer(p *playback.Player) {
	m.player = p
	p.AcceptHook(m)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := newProgressBar(name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Func receives playback notifications.
func (m *Monitor) Func(ctx timing.HookCtx) {
	state, ok := ctx.Item.(playback.PlaybackState)
	if !ok {
		return
	}

	schedule, makespan, _ := m.player.Snapshot()
	m.updatePlaybackBar(ctx.Pos, schedule, state)
	m.hub.broadcast(layout.Project(schedule, makespan, state))
}

func (m *Monitor) updatePlaybackBar(
	pos *timing.HookPos,
	schedule timeline.Schedule,
	state playback.PlaybackState,
) {
	switch pos {
	case playback.HookPosReset:
		if m.playbackBar != nil {
			m.CompleteProgressBar(m.playbackBar)
		}

		m.playbackBar = m.CreateProgressBar(
			"Playback "+strconv.FormatUint(state.Generation, 10),
			uint64(len(schedule)))
	case playback.HookPosRejected:
		if m.playbackBar != nil {
			m.CompleteProgressBar(m.playbackBar)
			m.playbackBar = nil
		}
	}

	if m.playbackBar == nil {
		return
	}

	var inProgress uint64
	if state.Phase == playback.PhaseAnimating {
		inProgress = 1
	}
	m.playbackBar.Set(uint64(state.ActiveIndex), inProgress)
}

// CurrentFrame projects the current state of the player.
func (m *Monitor) CurrentFrame() layout.Frame {
	schedule, makespan, state := m.player.Snapshot()
	return layout.Project(schedule, makespan, state)
}

// Router returns the HTTP routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.now).Methods(http.MethodGet)
	r.HandleFunc("/api/state", m.state).Methods(http.MethodGet)
	r.HandleFunc("/api/frame", m.frame).Methods(http.MethodGet)
	r.HandleFunc("/api/schedule", m.schedule).Methods(http.MethodGet)
	r.HandleFunc("/api/schedule", m.startSchedule).Methods(http.MethodPost)
	r.HandleFunc("/api/stop", m.stop).Methods(http.MethodPost)
	r.HandleFunc("/api/player", m.playerDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/progress", m.listProgressBars).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)
	r.HandleFunc("/ws", m.streamFrames)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// Listen opens the listening socket of the monitor.
func (m *Monitor) Listen() (net.Listener, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	return net.Listen("tcp", actualPort)
}

// URL returns the address of a listener as a local URL.
func URL(l net.Listener) string {
	return fmt.Sprintf("http://localhost:%d", l.Addr().(*net.TCPAddr).Port)
}

// Serve serves the monitor on l until ctx is done.
func (m *Monitor) Serve(ctx context.Context, l net.Listener) error {
	server := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
	}()

	err := server.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(data)
	dieOnErr(err)
}

type errorRsp struct {
	Error string `json:"error"`
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.CurrentTime()
	fmt.Fprintf(w, "{\"now\":%.10f}", now)
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, m.player.Observe())
}

func (m *Monitor) frame(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, m.CurrentFrame())
}

func (m *Monitor) schedule(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, m.player.Schedule())
}

func (m *Monitor) startSchedule(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxScheduleBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRsp{Error: err.Error()})
		return
	}

	s, err := timeline.ParseSchedule(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRsp{Error: err.Error()})
		return
	}

	if err := m.player.Start(s); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRsp{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, m.player.Observe())
}

func (m *Monitor) stop(w http.ResponseWriter, _ *http.Request) {
	m.player.Stop()
	writeJSON(w, http.StatusOK, m.player.Observe())
}

func (m *Monitor) playerDetails(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.player)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]ProgressBarStatus, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.Status())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, http.StatusOK, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, http.StatusOK, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		writeJSON(w, http.StatusConflict, errorRsp{Error: err.Error()})
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, http.StatusOK, prof)
}

// streamFrames pushes the current frame and then every new frame to a
// WebSocket viewer until it disconnects.
func (m *Monitor) streamFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := m.hub.subscribe()
	defer m.hub.unsubscribe(sub)

	sub.push(m.CurrentFrame())

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case f := <-sub.frames:
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(f); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
