package main

import (
	"flag"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/guerrasclon/termclient/internal/stubengine"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	secret := flag.String("secret", "dev-secret", "JWT signing secret")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	engine := stubengine.New(*secret, time.Now().UnixNano(), logger)

	logger.Info("stub engine listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, engine.Handler()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
