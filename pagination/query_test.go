package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want string
	}{
		{
			name: "empty",
			in:   Params{},
			want: "",
		},
		{
			name: "nested keys use brackets and sort",
			in:   Params{"page": Params{"size": 1, "number": 2}, "bob": "lob"},
			want: "bob=lob&page%5Bnumber%5D=2&page%5Bsize%5D=1",
		},
		{
			name: "values are escaped",
			in:   Params{"q": "a b&c=d"},
			want: "q=a+b%26c%3Dd",
		},
		{
			name: "lists",
			in:   Params{"tags": []any{"x", "y"}, "ids": []int{3, 1}},
			want: "ids%5B%5D=3&ids%5B%5D=1&tags%5B%5D=x&tags%5B%5D=y",
		},
		{
			name: "scalars",
			in:   Params{"b": true, "f": 1.5, "i": int64(7)},
			want: "b=true&f=1.5&i=7",
		},
		{
			name: "nil is skipped",
			in:   Params{"gone": nil, "here": "1"},
			want: "here=1",
		},
		{
			name: "typed nils are skipped",
			in:   Params{"filter": Params(nil), "ptr": (*int)(nil), "here": "1"},
			want: "here=1",
		},
		{
			name: "values without a query form are skipped",
			in:   Params{"s": struct{}{}, "fn": func() {}, "here": "1"},
			want: "here=1",
		},
		{
			name: "named basic types",
			in:   Params{"rel": RelNext, "n": int8(3)},
			want: "n=3&rel=next",
		},
		{
			name: "deep nesting",
			in:   Params{"filter": Params{"server": Params{"region": "eu"}}},
			want: "filter%5Bserver%5D%5Bregion%5D=eu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.in))
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	p := Params{
		"z": "1", "a": "2", "m": Params{"k": "3", "b": "4", "q": Params{"x": "5"}},
		"page": Params{"number": 4, "size": 25},
	}

	first := Encode(p)
	for range 50 {
		assert.Equal(t, first, Encode(p))
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Params
	}{
		{
			name: "empty",
			raw:  "",
			want: Params{},
		},
		{
			name: "page params and a plain one",
			raw:  "page%5Bnumber%5D=2&page%5Bsize%5D=1&bob=lob",
			want: Params{"bob": "lob", "page": Params{"number": "2", "size": "1"}},
		},
		{
			name: "unescaped brackets",
			raw:  "page[number]=3",
			want: Params{"page": Params{"number": "3"}},
		},
		{
			name: "lists keep order",
			raw:  "tags[]=b&tags[]=a",
			want: Params{"tags": []any{"b", "a"}},
		},
		{
			name: "deep",
			raw:  "a[b][c]=1",
			want: Params{"a": Params{"b": Params{"c": "1"}}},
		},
		{
			name: "repeated scalar keeps last",
			raw:  "a=1&a=2",
			want: Params{"a": "2"},
		},
		{
			name: "malformed escapes are skipped",
			raw:  "a=%zz&b=1",
			want: Params{"b": "1"},
		},
		{
			name: "lists of maps are not supported",
			raw:  "a[][b]=1&c=2",
			want: Params{"c": "2"},
		},
		{
			name: "broken brackets are literal",
			raw:  "a[b=1",
			want: Params{"a[b": "1"},
		},
		{
			name: "plus is a space",
			raw:  "q=hello+world",
			want: Params{"q": "hello world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.raw))
		})
	}
}

func TestParseQuery_RoundTripsEncode(t *testing.T) {
	raw := "bob=lob&page%5Bnumber%5D=2&page%5Bsize%5D=1&tags%5B%5D=x"

	assert.Equal(t, raw, Encode(ParseQuery(raw)))
}

func TestSplitURL(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantPath   string
		wantParams Params
	}{
		{
			name:       "no query",
			raw:        "https://api.example.com/v1/servers",
			wantPath:   "https://api.example.com/v1/servers",
			wantParams: Params{},
		},
		{
			name:       "query",
			raw:        "https://api.example.com/v1/servers?bob=lob",
			wantPath:   "https://api.example.com/v1/servers",
			wantParams: Params{"bob": "lob"},
		},
		{
			name:       "fragment dropped",
			raw:        "/v1/servers?bob=lob#top",
			wantPath:   "/v1/servers",
			wantParams: Params{"bob": "lob"},
		},
		{
			name:       "only the first question mark splits",
			raw:        "/v1/servers?q=what?",
			wantPath:   "/v1/servers",
			wantParams: Params{"q": "what?"},
		},
		{
			name:       "empty",
			raw:        "",
			wantPath:   "",
			wantParams: Params{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, params := SplitURL(tt.raw)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}
