package main

import (
	"encoding/json"
	"fmt"
	"os"

	"quercus/pkg/condition"
	"quercus/pkg/evaluator"
	"quercus/pkg/logger"
	"quercus/pkg/query"
)

func main() {
	log, err := logger.New(logger.Config{Level: "debug", Development: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	log = log.WithComponent("spike")

	// name = "otavio" AND age >= 26
	nameEq, err := condition.Eq(condition.MustField("name", "otavio"))
	if err != nil {
		log.Fatalw("build eq", "error", err)
	}
	ageGte, err := condition.Gte(condition.MustField("age", 26))
	if err != nil {
		log.Fatalw("build gte", "error", err)
	}
	cond, err := nameEq.And(ageGte)
	if err != nil {
		log.Fatalw("combine", "error", err)
	}

	// ... OR city IN ("Salvador", "Lisbon")
	cityIn, err := condition.In(condition.MustField("city", []string{"Salvador", "Lisbon"}))
	if err != nil {
		log.Fatalw("build in", "error", err)
	}
	cond, err = cond.Or(cityIn)
	if err != nil {
		log.Fatalw("combine", "error", err)
	}

	wire, err := json.MarshalIndent(cond, "", "  ")
	if err != nil {
		log.Fatalw("marshal", "error", err)
	}
	fmt.Println("Wire form:")
	fmt.Println(string(wire))

	decoded, err := condition.Decode(wire)
	if err != nil {
		log.Fatalw("decode", "error", err)
	}
	log.Infow("round trip ok", "nodes", countNodes(decoded))

	q, err := query.Select("name", "age", "city").
		From("person").
		Where(decoded).
		OrderBy(query.Asc("name")).
		Limit(10).
		Build()
	if err != nil {
		log.Fatalw("build query", "error", err)
	}
	queryWire, _ := json.Marshal(q)
	fmt.Println("Query:")
	fmt.Println(string(queryWire))

	records := []map[string]any{
		{"name": "otavio", "age": 26, "city": "Salvador"},
		{"name": "ada", "age": 36, "city": "London"},
		{"name": "poliana", "age": 30, "city": "Lisbon"},
	}

	eval := evaluator.New(evaluator.WithLogger(log))
	for _, record := range records {
		matched, err := eval.Matches(decoded, record)
		if err != nil {
			log.Fatalw("evaluate", "error", err)
		}
		log.Infow("record evaluated", "name", record["name"], "matched", matched)
	}
}

func countNodes(c condition.Condition) int {
	n := 0
	condition.Walk(c, func(condition.Condition) bool {
		n++
		return true
	})
	return n
}
