package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"atelier-backend/internal/config"
	"atelier-backend/internal/idgen"
	generate_excel "atelier-backend/internal/service/generate-excel"
	"atelier-backend/internal/service/recompute"
	"atelier-backend/internal/service/snapshot"
	"atelier-backend/internal/storage/mysql"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	persist := flag.Bool("persist", false, "записать завершённые статусы обратно в базу")
	flag.Parse()

	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	idgen.Init()

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loader := snapshot.NewLoader(storage)
	svc := recompute.NewService(loader, storage)
	genService := generate_excel.NewGenerateService()

	ctx := context.Background()

	res, err := svc.Run(ctx)
	if err != nil {
		log.Error("recompute failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("recompute finished",
		slog.Int("orders", len(res.Orders)),
		slog.Int("usages", len(res.Usages)),
		slog.Int("producers", len(res.ProducerStats)),
		slog.String("defect_rate", fmt.Sprintf("%.1f%%", res.DefectPercentage*100)),
	)

	if *persist {
		if err := svc.PersistCompletions(ctx, res); err != nil {
			log.Error("failed to persist completions", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("completed transitions persisted")
	}

	report, err := genService.GenerateExcel(res)
	if err != nil {
		log.Error("failed to generate report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.WriteFile(cfg.ReportPath, report, 0644); err != nil {
		log.Error("failed to write report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("report written", slog.String("path", cfg.ReportPath))
	fmt.Printf("отчёт: %s\n", cfg.ReportPath)
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	// Всегда пишем в основной вывод (stdout)
	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// Если это ошибка — дублируем в файл
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		cloned := r.Clone()
		if fileErr := h.errorHandler.Handle(ctx, cloned); fileErr != nil {
			return fileErr
		}
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	switch env {
	case envProd:
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envLocal:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		slog.Warn("Cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
