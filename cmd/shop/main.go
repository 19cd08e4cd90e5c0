package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"

	"shopAlloc/internal/config"
	"shopAlloc/internal/logging"
	"shopAlloc/internal/opt"
	"shopAlloc/internal/pipeline"
	"shopAlloc/internal/shopping"
	"shopAlloc/internal/simplex"
)

// Фабрики решателей по имени бэкенда
var backends = map[string]func(cfg *config.Config) (opt.Solver, error){
	"simplex": func(cfg *config.Config) (opt.Solver, error) {
		return simplex.New(cfg.Simplex())
	},
}

func main() {
	var (
		cfgPath  = flag.String("config", "", "путь к файлу конфигурации (toml/yaml/json); пусто — значения по умолчанию")
		goods    = flag.Int("goods", 10, "количество товаров N")
		reqs     = flag.Int("reqs", 5, "количество потребностей M")
		seed     = flag.Int64("seed", 1, "сид генератора параметров задачи")
		relax    = flag.Bool("relax", false, "решать непрерывную релаксацию вместо целочисленной задачи")
		backend  = flag.String("backend", "simplex", "бэкенд решателя")
		logLevel = flag.String("log_level", "info", "уровень логирования: debug | info | warn | error")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка конфигурации:", err)
		os.Exit(2)
	}

	// Явно заданные флаги перекрывают файл и окружение
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "goods":
			cfg.Problem.Goods = *goods
		case "reqs":
			cfg.Problem.Requirements = *reqs
		case "seed":
			cfg.Problem.Seed = *seed
		case "relax":
			cfg.Problem.Integer = !*relax
		case "backend":
			cfg.Solver.Backend = *backend
		case "log_level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка конфигурации:", err)
		os.Exit(2)
	}

	log, closeLog := logging.New(cfg.Logging(), os.Stderr)
	defer closeLog()

	factory, ok := backends[cfg.Solver.Backend]
	if !ok {
		fmt.Fprintf(os.Stderr, "Бэкенд %q не поддерживается; доступные: %v\n", cfg.Solver.Backend, keys(backends))
		os.Exit(2)
	}
	solver, err := factory(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка в конфигурации решателя:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inst := shopping.RandomInstance(
		cfg.Problem.Goods,
		cfg.Problem.Requirements,
		cfg.Bounds(),
		rand.New(rand.NewSource(cfg.Problem.Seed)),
	)
	log.Debug("instance generated", "seed", cfg.Problem.Seed)

	p := pipeline.Pipeline{
		Solver:      solver,
		Integer:     cfg.Problem.Integer,
		RoundingTol: cfg.Report.RoundingTol,
		Out:         os.Stdout,
		Log:         log,
	}
	out, err := p.Run(ctx, inst)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		exit(closeLog, 1)
	}
	if !out.Result.Optimal() {
		exit(closeLog, 1)
	}
}

// exit закрывает лог до os.Exit: отложенные вызовы при выходе не выполняются.
func exit(closeLog func() error, code int) {
	_ = closeLog()
	os.Exit(code)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
