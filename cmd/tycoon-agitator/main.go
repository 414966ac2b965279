// Package main - tycoon-agitator
// Load generator: many concurrent WebSocket clients sending random game
// commands at one server, with a pass/fail verdict on the error rate.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"slices"
	"sync"
	"sync/atomic"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"
	"github.com/spf13/pflag"

	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
	"github.com/abstogo/SpaceTycoon/internal/network"
	"github.com/abstogo/SpaceTycoon/internal/rng"
)

type options struct {
	url          string
	clients      int
	interval     time.Duration
	duration     time.Duration
	ramp         time.Duration
	seed         uint64
	maxErrorRate float64
	out          string
}

// counters are shared by every client goroutine.
type counters struct {
	sent, received     atomic.Int64
	accepted, rejected atomic.Int64
	errors             atomic.Int64

	mu        sync.Mutex
	latencies []time.Duration
}

func (c *counters) observe(d time.Duration) {
	c.mu.Lock()
	c.latencies = append(c.latencies, d)
	c.mu.Unlock()
}

// Commands the agitator sends. RESOLVE is left out since prompt ids are
// only known from STATUS messages.
var commandTypes = []string{
	network.CmdTravel,
	network.CmdMaintain,
	network.CmdRefuel,
	network.CmdTrigger,
	network.CmdRest,
	network.CmdBuy,
	network.CmdSell,
}

var goods = []ship.GoodsID{
	ship.GoodsWater,
	ship.GoodsRations,
	ship.GoodsMachinery,
	ship.GoodsElectronics,
	ship.GoodsMedical,
	ship.GoodsLuxuries,
}

var eventTypes = catalog.MustDefault().Types()

func main() {
	var opts options
	fs := pflag.NewFlagSet("tycoon-agitator", pflag.ExitOnError)
	fs.StringVar(&opts.url, "url", "ws://localhost:8080/ws", "WebSocket endpoint")
	fs.IntVarP(&opts.clients, "clients", "c", 50, "concurrent clients")
	fs.DurationVar(&opts.interval, "interval", 150*time.Millisecond, "delay between commands per client")
	fs.DurationVarP(&opts.duration, "duration", "d", time.Minute, "length of the run")
	fs.DurationVar(&opts.ramp, "ramp", 10*time.Millisecond, "delay between client connections")
	fs.Uint64Var(&opts.seed, "seed", 1, "seed for command selection")
	fs.Float64Var(&opts.maxErrorRate, "max-error-rate", 0.05, "error rate above which the run fails")
	fs.StringVarP(&opts.out, "out", "o", "stress_test_results.json", "JSON report path (empty to skip)")
	_ = fs.Parse(os.Args[1:])

	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Printf("agitating %s with %d clients for %v", opts.url, opts.clients, opts.duration)
	c := &counters{}
	started := time.Now()
	run(ctx, opts, c)

	rep := summarize(opts, c, time.Since(started))
	rep.print(os.Stdout)
	if opts.out != "" {
		if err := rep.write(opts.out); err != nil {
			log.Printf("write report: %v", err)
		}
	}
	if !rep.Passed {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, c *counters) {
	var wg sync.WaitGroup
	for i := 0; i < opts.clients; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			client(ctx, id, opts, c)
		}(i)
		time.Sleep(opts.ramp)
	}

	go func() {
		t := time.NewTicker(5 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				log.Printf("sent=%d received=%d errors=%d", c.sent.Load(), c.received.Load(), c.errors.Load())
			}
		}
	}()
	wg.Wait()
}

func client(ctx context.Context, id int, opts options, c *counters) {
	src := rng.New(opts.seed + uint64(id))

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, opts.url, nil)
	if err != nil {
		log.Printf("client %d: dial: %v", id, err)
		c.errors.Add(1)
		return
	}
	defer conn.Close()

	go func() {
		for {
			var msg struct {
				Type    network.MessageType   `json:"type"`
				Payload network.CommandResult `json:"payload"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			c.received.Add(1)
			if msg.Type != network.MsgTypeResult {
				continue
			}
			if msg.Payload.OK {
				c.accepted.Add(1)
			} else {
				c.rejected.Add(1)
			}
		}
	}()

	t := time.NewTicker(opts.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		cmd, err := randomCommand(src)
		if err != nil {
			c.errors.Add(1)
			continue
		}
		start := time.Now()
		if err := conn.WriteJSON(cmd); err != nil {
			c.errors.Add(1)
			return
		}
		c.observe(time.Since(start))
		c.sent.Add(1)
	}
}

func randomCommand(src rng.Source) (network.Command, error) {
	cmd := network.Command{Type: commandTypes[src.IntN(len(commandTypes))]}

	var payload any
	switch cmd.Type {
	case network.CmdMaintain:
		kinds := []string{"basic", "full"}
		payload = map[string]string{"kind": kinds[src.IntN(len(kinds))]}
	case network.CmdRefuel:
		payload = map[string]int{"amount": rng.Between(src, 0, 20)}
	case network.CmdTrigger:
		payload = map[string]string{"event_type": string(eventTypes[src.IntN(len(eventTypes))])}
	case network.CmdBuy, network.CmdSell:
		payload = map[string]any{
			"goods":    goods[src.IntN(len(goods))],
			"quantity": rng.Between(src, 1, 5),
		}
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return cmd, err
		}
		cmd.Payload = raw
	}
	return cmd, nil
}

// report is the outcome of a run, also written as JSON.
type report struct {
	Clients    int     `json:"clients"`
	Elapsed    string  `json:"elapsed"`
	Sent       int64   `json:"sent"`
	Received   int64   `json:"received"`
	Accepted   int64   `json:"accepted"`
	Rejected   int64   `json:"rejected"`
	Errors     int64   `json:"errors"`
	ErrorRate  float64 `json:"error_rate"`
	Throughput float64 `json:"throughput_per_sec"`
	WriteP50   string  `json:"write_p50"`
	WriteP99   string  `json:"write_p99"`
	WriteMax   string  `json:"write_max"`
	Seed       uint64  `json:"seed"`
	Passed     bool    `json:"passed"`
}

func summarize(opts options, c *counters, elapsed time.Duration) report {
	r := report{
		Clients:  opts.clients,
		Elapsed:  elapsed.Round(time.Millisecond).String(),
		Sent:     c.sent.Load(),
		Received: c.received.Load(),
		Accepted: c.accepted.Load(),
		Rejected: c.rejected.Load(),
		Errors:   c.errors.Load(),
		Seed:     opts.seed,
	}
	if attempts := r.Sent + r.Errors; attempts > 0 {
		r.ErrorRate = float64(r.Errors) / float64(attempts)
	}
	if secs := elapsed.Seconds(); secs > 0 {
		r.Throughput = float64(r.Sent) / secs
	}

	c.mu.Lock()
	lat := slices.Clone(c.latencies)
	c.mu.Unlock()
	slices.Sort(lat)
	r.WriteP50 = percentile(lat, 0.50).String()
	r.WriteP99 = percentile(lat, 0.99).String()
	r.WriteMax = percentile(lat, 1).String()

	r.Passed = r.Sent > 0 && r.ErrorRate <= opts.maxErrorRate
	return r
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	i := int(q * float64(len(sorted)-1))
	return sorted[i]
}

func (r report) print(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "clients\t%d\n", r.Clients)
	fmt.Fprintf(tw, "elapsed\t%s\n", r.Elapsed)
	fmt.Fprintf(tw, "sent\t%s\n", humanize.Comma(r.Sent))
	fmt.Fprintf(tw, "received\t%s\n", humanize.Comma(r.Received))
	fmt.Fprintf(tw, "accepted / rejected\t%s / %s\n", humanize.Comma(r.Accepted), humanize.Comma(r.Rejected))
	fmt.Fprintf(tw, "errors\t%d (%.2f%%)\n", r.Errors, r.ErrorRate*100)
	fmt.Fprintf(tw, "throughput\t%.1f cmd/s\n", r.Throughput)
	fmt.Fprintf(tw, "write p50 / p99 / max\t%s / %s / %s\n", r.WriteP50, r.WriteP99, r.WriteMax)
	verdict := "FAIL"
	if r.Passed {
		verdict = "PASS"
	}
	fmt.Fprintf(tw, "verdict\t%s\n", verdict)
	tw.Flush()
}

func (r report) write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
