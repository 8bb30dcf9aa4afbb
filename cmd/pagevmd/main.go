// Command pagevmd runs a pager.Manager behind a gRPC listener, backed by
// an in-process MMU simulator standing in for a real CPU/TLB collaborator.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/pagevm/pagevm/internal/mmu"
	"github.com/pagevm/pagevm/internal/pager"
	"github.com/pagevm/pagevm/internal/pagercfg"
	"github.com/pagevm/pagevm/internal/reporter"
	"github.com/pagevm/pagevm/internal/rpc"
)

var (
	flagGRPC    = flag.String("grpc", ":9190", "gRPC listen address")
	flagConfig  = flag.String("config", "", "path to a pagevm YAML config file (defaults used if empty)")
	flagReport  = flag.String("report", "*/30 * * * * *", "cron schedule (with seconds) for the periodic stats report")
	flagVerbose = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()

	cfgFile, err := pagercfg.Load(*flagConfig)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	cfg, err := cfgFile.ToManagerConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	sim := mmu.NewSimulator(cfg.NFrames, cfg.NBlocks, cfg.PageSize)

	mgr, err := pager.New(cfg, sim)
	if err != nil {
		log.Fatalf("pager init error: %v", err)
	}
	if !*flagVerbose {
		mgr.SetLogger(log.New(io.Discard, "", 0))
	}

	rep := reporter.New(mgr, log.Default())
	if err := rep.Start(*flagReport); err != nil {
		log.Fatalf("reporter schedule error: %v", err)
	}
	defer rep.Stop()

	encoding.RegisterCodec(jsonCodec{})

	lis, err := net.Listen("tcp", *flagGRPC)
	if err != nil {
		log.Fatalf("gRPC listen error: %v", err)
	}
	gs := grpc.NewServer()
	rpc.RegisterPagerServer(gs, rpc.NewService(mgr))
	log.Printf("pagevmd: gRPC listening on %s", *flagGRPC)
	if err := gs.Serve(lis); err != nil {
		log.Fatalf("gRPC serve error: %v", err)
	}
}

// jsonCodec registers the same wire format the service package's RPC
// descriptors expect; kept local to main so the binary doesn't need to
// reach into rpc's unexported codec type.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
