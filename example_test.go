package csvtable_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nao1215/csvtable"
	"golang.org/x/text/language"
)

// ExampleParseString parses untyped CSV text with a header row. Blank and
// duplicate header names are replaced with synthetic names.
func ExampleParseString() {
	data := "name,,name\nAlice,30,Tokyo\nBob,25\n"

	table, err := csvtable.ParseString(data, csvtable.NewParseOptions().WithHeader(true))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(table.Header())
	for _, row := range table.Rows() {
		fmt.Println(row)
	}

	// Output:
	// [name Column1 Column2]
	// [Alice 30 Tokyo]
	// [Bob 25]
}

// ExampleParseStringTyped infers column types from the first data row.
func ExampleParseStringTyped() {
	data := "id;price;released\n1;1.299,50;24.12.2023\n2;15,00;1.2.2024\n"

	candidates := []csvtable.Candidate{
		csvtable.IntCandidate(),
		csvtable.DoubleCandidate(),
		csvtable.DateTimeCandidate(),
	}
	opts := csvtable.NewParseOptions().
		WithSeparator(';').
		WithHeader(true).
		WithLocale(language.German)

	table, err := csvtable.ParseStringTyped(data, candidates, opts)
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range table.Columns() {
		fmt.Printf("%s: %s\n", c.Name, c.TypeName)
	}
	for _, row := range table.Rows() {
		fmt.Println(row[0], row[1], row[2].(time.Time).Format("2006-01-02"))
	}

	// Output:
	// id: int
	// price: double
	// released: datetime
	// 1 1299.5 2023-12-24
	// 2 15 2024-02-01
}

// ExampleConversionError shows the error returned when a later row does not
// fit the type fixed by the first data row.
func ExampleConversionError() {
	data := "qty\n3\n4\nmany\n"

	_, err := csvtable.ParseStringTyped(data, []csvtable.Candidate{csvtable.IntCandidate()},
		csvtable.NewParseOptions().WithHeader(true))

	var convErr *csvtable.ConversionError
	if errors.As(err, &convErr) {
		fmt.Printf("column %s, row %d: %q is not %s\n", convErr.Column, convErr.Row, convErr.Value, convErr.Type)
	}

	// Output:
	// column qty, row 3: "many" is not int
}

// ExampleReader reads rows one at a time.
func ExampleReader() {
	reader, err := csvtable.NewReader(strings.NewReader("city,country\nParis,FR\n\"New York, NY\",US\n"),
		csvtable.NewParseOptions().WithHeader(true))
	if err != nil {
		log.Fatal(err)
	}
	defer reader.Close()

	fmt.Println(reader.Header())
	for row, err := range reader.All() {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(row[0], "|", row[1])
	}

	// Output:
	// [city country]
	// Paris | FR
	// New York, NY | US
}

// ExampleWriteTable writes a typed table back as CSV.
func ExampleWriteTable() {
	table, err := csvtable.ParseStringTyped("n,ok\n1,TRUE\n2,false\n",
		[]csvtable.Candidate{csvtable.IntCandidate(), csvtable.BoolCandidate()},
		csvtable.NewParseOptions().WithHeader(true))
	if err != nil {
		log.Fatal(err)
	}

	if err := csvtable.WriteTable(os.Stdout, table, ','); err != nil {
		log.Fatal(err)
	}

	// Output:
	// n,ok
	// 1,true
	// 2,false
}

// ExampleOpenSQLite loads parsed tables into SQLite and queries them.
func ExampleOpenSQLite() {
	ctx := context.Background()
	sales, err := csvtable.ParseStringTyped("region,amount\neast,10.5\nwest,4\neast,2\n",
		[]csvtable.Candidate{csvtable.DoubleCandidate()},
		csvtable.NewParseOptions().WithHeader(true))
	if err != nil {
		log.Fatal(err)
	}

	db, err := csvtable.OpenSQLite(ctx, map[string]*csvtable.Table{"sales": sales})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT region, SUM(amount) FROM sales GROUP BY region ORDER BY region")
	if err != nil {
		log.Fatal(err)
	}
	defer rows.Close()

	for rows.Next() {
		var region string
		var total float64
		if err := rows.Scan(&region, &total); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s %.1f\n", region, total)
	}
	if err := rows.Err(); err != nil {
		log.Fatal(err)
	}

	// Output:
	// east 12.5
	// west 4.0
}
