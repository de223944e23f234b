package filter_test

import (
	"database/sql"
	"errors"
	"math"
	"slices"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/hugr-lab/autofilter-go/filter"
)

type member struct {
	Name  string   `filter:"name"`
	Age   int      `filter:"age"`
	Score *float64 `filter:"score"`
}

func ptr(v float64) *float64 { return &v }

var members = []member{
	{Name: "ann", Age: 17, Score: ptr(88.5)},
	{Name: "bob", Age: 18, Score: ptr(100)},
	{Name: "cid", Age: 30, Score: nil},
	{Name: "dee", Age: 0, Score: ptr(12)},
	{Name: "eve", Age: 65, Score: ptr(99.99)},
	{Name: "fay", Age: 41, Score: ptr(math.NaN())},
}

func openMembers(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("DuckDB not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("CREATE TABLE members (name VARCHAR, age INTEGER, score DOUBLE)"); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	for _, m := range members {
		var score any
		if m.Score != nil {
			score = *m.Score
		}
		if _, err := db.Exec("INSERT INTO members VALUES (?, ?, ?)", m.Name, m.Age, score); err != nil {
			t.Fatalf("Failed to insert %s: %v", m.Name, err)
		}
	}
	return db
}

func queryNames(t *testing.T, db *sql.DB, where string, args ...any) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM members WHERE "+where+" ORDER BY name", args...)
	if err != nil {
		t.Fatalf("Query %q failed: %v", where, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	return names
}

// evalNames selects members in memory. A missing optional value never
// selects, matching SQL comparison with NULL.
func evalNames(t *testing.T, expr filter.Expression) []string {
	t.Helper()

	prog, err := filter.Compile(expr, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	var names []string
	for _, m := range members {
		ok, err := prog.Eval(m)
		if errors.Is(err, filter.ErrNoValue) {
			continue
		}
		if err != nil {
			t.Fatalf("Eval %s failed: %v", m.Name, err)
		}
		if ok {
			names = append(names, m.Name)
		}
	}
	slices.Sort(names)
	return names
}

func TestDuckDBAgreesWithEval(t *testing.T) {
	db := openMembers(t)
	target := filter.NewTarget("m", filter.SchemaOf[member]())
	enc := filter.NewDuckDBEncoder(nil)

	cases := []struct {
		property string
		value    any
	}{
		{"age", 18},
		{"age", 0},
		{"name", "bob"},
		{"score", 100},
		{"score", 99.99},
		{"score", 1},
		{"score", math.NaN()},
		{"age", math.NaN()},
	}

	for _, c := range cases {
		prop, err := target.Schema.Property(c.property)
		if err != nil {
			t.Fatalf("Property failed: %v", err)
		}

		for _, op := range filter.Operators {
			expr, err := filter.BuildComparison(target, prop, op, c.value)
			if err != nil {
				t.Fatalf("BuildComparison failed: %v", err)
			}

			t.Run(filter.Format(expr), func(t *testing.T) {
				want := evalNames(t, expr)

				inline := queryNames(t, db, enc.Encode(expr))
				if !slices.Equal(inline, want) {
					t.Errorf("inline SQL %q: expected %v, got %v", enc.Encode(expr), want, inline)
				}

				where, args := enc.EncodeParams(expr)
				params := queryNames(t, db, where, args...)
				if !slices.Equal(params, want) {
					t.Errorf("parameterized SQL %q: expected %v, got %v", where, want, params)
				}
			})
		}
	}
}
