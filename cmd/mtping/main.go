// Command mtping connects to a data-center and measures ping round
// trips.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mtproto"
	"github.com/gramkit/gram/transport"
)

type config struct {
	Addr      string        `yaml:"addr"`
	DC        int           `yaml:"dc"`
	Transport string        `yaml:"transport"`
	PublicKey string        `yaml:"public_key"`
	Count     int           `yaml:"count"`
	Interval  time.Duration `yaml:"interval"`
}

func (c *config) setDefaults() {
	if c.Addr == "" {
		c.Addr = "149.154.167.50:443"
	}
	if c.DC == 0 {
		c.DC = 2
	}
	if c.Count == 0 {
		c.Count = 3
	}
	if c.Interval == 0 {
		c.Interval = time.Second
	}
}

func newTransport(mode string) (*transport.Transport, error) {
	switch mode {
	case "", "intermediate":
		return transport.Intermediate(), nil
	case "padded":
		return transport.PaddedIntermediate(), nil
	case "full":
		return transport.Full(), nil
	case "obfuscated2":
		return transport.Obfuscated2(), nil
	default:
		return nil, errors.Errorf("unknown transport %q", mode)
	}
}

func run(ctx context.Context, log *zap.Logger, cfg config) error {
	pem, err := os.ReadFile(cfg.PublicKey)
	if err != nil {
		return errors.Wrap(err, "read public key")
	}
	keys, err := crypto.ParseRSAPublicKeys(pem)
	if err != nil {
		return errors.Wrap(err, "parse public key")
	}
	t, err := newTransport(cfg.Transport)
	if err != nil {
		return err
	}

	conn := mtproto.New(
		func(ctx context.Context) (transport.Conn, error) {
			return t.DialContext(ctx, "tcp", cfg.Addr)
		},
		mtproto.Options{
			DC:         cfg.DC,
			PublicKeys: keys,
			Logger:     log.Named("conn"),
		},
	)
	return conn.Run(ctx, func(ctx context.Context) error {
		for i := 0; i < cfg.Count; i++ {
			start := time.Now()
			if err := conn.Ping(ctx); err != nil {
				return errors.Wrap(err, "ping")
			}
			log.Info("Pong",
				zap.Int("seq", i+1),
				zap.Duration("latency", time.Since(start)),
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.Interval):
			}
		}
		return nil
	})
}

func main() {
	cfgPath := flag.String("config", "mtping.yaml", "path to config file")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	data, err := os.ReadFile(*cfgPath)
	if err != nil {
		log.Fatal("Read config", zap.Error(err))
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatal("Parse config", zap.Error(err))
	}
	cfg.setDefaults()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, log, cfg); err != nil {
		log.Fatal("Ping failed", zap.Error(err))
	}
}
