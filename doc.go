// Package csvtable parses CSV text into tables and, on request, infers the
// type of every column from a caller supplied list of candidate types.
//
// # Tokenizing
//
// Fields are separated by a single character (comma by default) and rows by
// "\n", "\r\n" or a lone "\r". A field may be wrapped in double quotes to
// hold separators, quotes ("" stands for one quote) and line breaks.
// Spaces in front of a field are dropped; characters between a closing
// quote and the next separator are dropped as well:
//
//	a, "b ""c""" ,"x"y  ->  [a] [b "c"] [x]
//
// # Basic Usage
//
//	table, err := csvtable.ParseString("name,age\nAlice,30\n",
//	    csvtable.NewParseOptions().WithHeader(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if table == nil {
//	    // the input held no rows
//	}
//
// # Type Inference
//
// ParseTyped tries the candidates in order on the first data row of every
// column and keeps the first one that converts the value. That decision is
// final: a later cell that does not convert aborts the parse with a
// *ConversionError.
//
//	candidates := []csvtable.Candidate{
//	    csvtable.IntCandidate(),
//	    csvtable.DoubleCandidate(),
//	    csvtable.DateTimeCandidate(),
//	}
//	table, err := csvtable.ParseStringTyped(data, candidates, csvtable.NewParseOptions().
//	    WithHeader(true).
//	    WithLocale(language.German))
//
// # Row By Row
//
// NewReader returns a Reader for inputs that should not be materialized:
//
//	reader, err := csvtable.NewReader(f, csvtable.NewParseOptions())
//	for row, err := range reader.All() {
//	    ...
//	}
//
// # Exporting
//
// Tables can be written back as CSV or TSV (WriteTable, WriteFile), as
// Excel workbooks (WriteXLSX), converted to Arrow records and Parquet files
// (Table.ToArrowRecord, WriteParquet), or loaded into SQLite (SaveToSQLite,
// OpenSQLite).
package csvtable
