package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"shopAlloc/internal/bench"
	"shopAlloc/internal/logging"
	"shopAlloc/internal/opt"
	"shopAlloc/internal/shopping"
	"shopAlloc/internal/simplex"
)

// Фабрики

func newSimplexFactory(cfg simplex.Config) func() opt.Solver {
	return func() opt.Solver {
		solver, _ := simplex.New(cfg)
		return solver
	}
}

func main() {
	// CLI флаги для настройки решателя и политики запуска
	var (
		out      = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		pairs    = flag.String("pairs", "10x5,20x8,40x10", "конфигурации: количество товаров X количество потребностей (через запятую)")
		variants = flag.String("variants", "ILP,LP", "постановки: ILP (целочисленная), LP (релаксация) (через запятую)")
		runs     = flag.Int("runs", 30, "количество экземпляров на конфигурацию (с разными сидами)")
		baseSeed = flag.Int64("seed", 1000, "базовый сид генерации экземпляров")
		perRunTO = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		logLevel = flag.String("log_level", "warn", "уровень логирования: debug | info | warn | error")

		// --- Генерация параметров ---
		costMin   = flag.Int("cost_min", 1, "минимальная стоимость товара")
		costMax   = flag.Int("cost_max", 9, "максимальная стоимость товара")
		covMax    = flag.Int("cov_max", 2, "максимальный вклад товара в потребность")
		targetMin = flag.Int("target_min", 1, "минимальное значение потребности")
		targetMax = flag.Int("target_max", 99, "максимальное значение потребности")

		// --- Симплекс / ветви и границы ---
		tol       = flag.Float64("tol", 1e-10, "допуск симплекс-метода")
		intTol    = flag.Float64("int_tol", 1e-6, "допуск целочисленности")
		maxNodes  = flag.Int("max_nodes", 200000, "максимальное число LP-подзадач")
		branching = flag.String("branching", "most-infeasible", "правило ветвления: most-infeasible | first")
	)
	flag.Parse()

	ctx := context.Background()
	log, _ := logging.New(logging.Config{Level: *logLevel}, os.Stderr)

	cases, err := parsePairs(*pairs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	bounds := shopping.Bounds{
		CostMin:     *costMin,
		CostMax:     *costMax,
		CoverageMax: *covMax,
		TargetMin:   *targetMin,
		TargetMax:   *targetMax,
	}
	if err := bounds.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в параметрах генерации:", err)
		os.Exit(2)
	}

	sxCfg := simplex.Config{
		Tolerance:      *tol,
		IntegralityTol: *intTol,
		MaxNodes:       *maxNodes,
		Branching:      simplex.Branching(*branching),
	}
	if err := sxCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации симплекс-метода:", err)
		os.Exit(2)
	}

	available := map[string]bench.Variant{
		"ILP": {Name: "ILP", Integer: true, Factory: newSimplexFactory(sxCfg)},
		"LP":  {Name: "LP", Integer: false, Factory: newSimplexFactory(sxCfg)},
	}

	var selected []bench.Variant
	for _, v := range splitCSV(*variants) {
		va, ok := available[strings.ToUpper(v)]
		if !ok {
			fmt.Fprintf(os.Stderr, "Постановка не предоставлена в программе %q; доступные: %v\n", v, keys(available))
			os.Exit(2)
		}
		selected = append(selected, va)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		Bounds:        bounds,
		PerRunTimeout: *perRunTO,
		Log:           log,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, v := range selected {
			fmt.Printf("Запущена постановка %s; %d товаров %d потребностей (общее кол-во запусков=%d)...\n", v.Name, c.Goods, c.Requirements, runner.Runs)

			rec, err := runner.RunCase(ctx, c, v)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Оптимально: %d, недопустимо: %d, сбоев: %d | Целевая функция: лучшее=%.2f среднее=%.2f стандартное отклонение=%.2f | LP-подзадач в среднем=%.1f | Время: среднее=%.2fms\n",
				rec.Optimal, rec.Infeasible, rec.Failed,
				rec.ObjectiveMin, rec.ObjectiveMean, rec.ObjectiveStd,
				rec.NodesMean, rec.TimeMeanMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parsePairs(s string) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for _, p := range parts {
		gm := strings.Split(p, "x")
		if len(gm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 10x5", p)
		}
		goods, err := atoiStrict(gm[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества товаров: %w", p, err)
		}
		reqs, err := atoiStrict(gm[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества потребностей: %w", p, err)
		}
		if goods <= 0 || reqs <= 0 {
			return nil, fmt.Errorf("пара %q: количество товаров и потребностей должно быть > 0", p)
		}

		cases = append(cases, bench.Case{Goods: goods, Requirements: reqs})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func keys(m map[string]bench.Variant) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
