package csv_test

import (
	"testing"

	"github.com/hollis/threadbare/internal/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "simple rows",
			input: "a,b,c\nd,e,f\n",
			want:  [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name:  "crlf row separators",
			input: "a,b\r\nc,d\r\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "quoted field with comma",
			input: `name,"last, first"` + "\n",
			want:  [][]string{{"name", "last, first"}},
		},
		{
			name:  "doubled quote is literal quote",
			input: `"say ""hi""",x` + "\n",
			want:  [][]string{{`say "hi"`, "x"}},
		},
		{
			name:  "quoted multi-line cell",
			input: "a,\"line one\nline two\",c\nnext,row,here\n",
			want:  [][]string{{"a", "line one\nline two", "c"}, {"next", "row", "here"}},
		},
		{
			name:  "fully blank rows skipped",
			input: "a,b\n\n , \nc,d\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "no trailing newline",
			input: "a,b\nc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "empty fields preserved in non-blank rows",
			input: "a,,c\n",
			want:  [][]string{{"a", "", "c"}},
		},
		{
			name:  "stray quote mid-field kept literally",
			input: "5\" heel,x\n",
			want:  [][]string{{`5" heel`, "x"}},
		},
		{
			name:  "empty document",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, csv.Parse(tt.input))
		})
	}
}

func TestParseTable(t *testing.T) {
	table := csv.ParseTable("Handle,Title,Vendor\nclassic-tee,Classic Tee,Acme\n")
	require.NotNil(t, table)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, "classic-tee", table.Get(row, "Handle"))
	assert.Equal(t, "Classic Tee", table.Get(row, "title")) // case-insensitive
	assert.Equal(t, "", table.Get(row, "Unknown Column"))

	assert.Nil(t, csv.ParseTable(""))
}

func TestGetShortRow(t *testing.T) {
	table := csv.ParseTable("a,b,c\nonly-one\n")
	require.NotNil(t, table)
	assert.Equal(t, "only-one", table.Get(table.Rows[0], "a"))
	assert.Equal(t, "", table.Get(table.Rows[0], "c"))
}

func TestWriteRoundTrip(t *testing.T) {
	rows := [][]string{
		{"Handle", "Title"},
		{"classic-tee", `The "Classic", v2`},
		{"hoodie", "line one\nline two"},
	}

	out := csv.Write(rows)
	assert.Equal(t, rows, csv.Parse(out))
}
