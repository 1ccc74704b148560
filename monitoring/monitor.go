// Package monitoring serves the state of running generators over HTTP.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/gen/hooking"
	"github.com/sarchlab/datagen/gen/naming"
	"github.com/sarchlab/datagen/logging"
	"github.com/sarchlab/datagen/monitoring/web"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
	"go.uber.org/zap"
)

// A Generator is anything the monitor can observe. All datagen generators
// qualify.
type Generator interface {
	naming.Named
	hooking.Hookable
}

type stateful interface {
	State() gen.State
}

// Monitor exposes registered generators and progress bars through a small
// JSON API and a static page.
type Monitor struct {
	portNumber  int
	openBrowser bool
	logger      *zap.Logger

	lock       sync.Mutex
	generators []Generator
	counter    *hooking.ProductCountTracer

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	server *http.Server
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		logger:  zap.NewNop(),
		counter: hooking.NewProductCountTracer(),
	}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// refused and a random port is used instead.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("port number not allowed, using a random port",
			zap.Int("port", portNumber))

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithOpenBrowser makes StartServer open the monitor page in a browser.
func (m *Monitor) WithOpenBrowser(open bool) *Monitor {
	m.openBrowser = open
	return m
}

// WithLogger sets the logger of the monitor.
func (m *Monitor) WithLogger(logger *zap.Logger) *Monitor {
	m.logger = logger
	return m
}

// RegisterGenerator adds a generator to be monitored. The monitor counts the
// products of the generator through a hook.
func (m *Monitor) RegisterGenerator(g Generator) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, existing := range m.generators {
		if existing.Name() == g.Name() {
			return
		}
	}

	m.generators = append(m.generators, g)
	g.AcceptHook(m.counter)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// TrackProgress creates a progress bar named after the generator that
// advances with every product the generator emits.
func (m *Monitor) TrackProgress(g Generator, total uint64) *ProgressBar {
	bar := m.CreateProgressBar(g.Name(), total)
	g.AcceptHook(NewProgressHook(bar))

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

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_generators", m.listGenerators)
	r.HandleFunc("/api/generator/{name}", m.generatorDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/counts", m.listCounts)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns the address it
// listens on.
func (m *Monitor) StartServer() (string, error) {
	if m.server != nil {
		return "", errors.New("monitor server already started")
	}

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", errors.Wrap(err, "monitor listen")
	}

	addr := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	m.server = &http.Server{
		Handler:           m.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitor server stopped", zap.Error(err))
		}
	}()

	m.logger.Info("monitoring generators", zap.String(logging.FieldAddress, addr))

	if m.openBrowser {
		if err := browser.OpenURL(addr); err != nil {
			m.logger.Warn("cannot open browser", zap.Error(err))
		}
	}

	return addr, nil
}

// StopServer shuts the web server down.
func (m *Monitor) StopServer(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	err := m.server.Shutdown(ctx)
	m.server = nil

	return err
}

type generatorRsp struct {
	Name     string `json:"name"`
	State    string `json:"state,omitempty"`
	Products uint64 `json:"products"`
	Depleted uint64 `json:"depleted"`
	Resets   uint64 `json:"resets"`
}

func (m *Monitor) snapshot() []Generator {
	m.lock.Lock()
	defer m.lock.Unlock()

	gens := make([]Generator, len(m.generators))
	copy(gens, m.generators)

	return gens
}

func (m *Monitor) listGenerators(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0)
	for _, g := range m.snapshot() {
		names = append(names, g.Name())
	}

	sort.Strings(names)

	writeJSON(w, names)
}

func (m *Monitor) listCounts(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]generatorRsp, 0)

	for _, g := range m.snapshot() {
		entry := generatorRsp{
			Name:     g.Name(),
			Products: m.counter.ProductCount(g.Name()),
			Depleted: m.counter.DepletionCount(g.Name()),
			Resets:   m.counter.ResetCount(g.Name()),
		}

		if s, ok := g.(stateful); ok {
			entry.State = s.State().String()
		}

		rsp = append(rsp, entry)
	}

	sort.Slice(rsp, func(i, j int) bool { return rsp[i].Name < rsp[j].Name })

	writeJSON(w, rsp)
}

func (m *Monitor) generatorDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	g := m.findGeneratorOr404(w, name)
	if g == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(g)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	GeneratorName string `json:"generator_name,omitempty"`
	FieldName     string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	g := m.findGeneratorOr404(w, req.GeneratorName)
	if g == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(g)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) findGeneratorOr404(
	w http.ResponseWriter,
	name string,
) Generator {
	for _, g := range m.snapshot() {
		if g.Name() == name {
			return g
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Generator not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressBarRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
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

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
