// A simple spelling corrector implemented as an HTTP server on top of
// levfuzzy.Index.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"

	"github.com/aaw/levfuzzy"
	"github.com/aaw/levfuzzy/alphabet"
)

// Options holds typeahead's CLI flags, in the same CreateGroup/goflags
// shape projectdiscovery/alterx's runner.Options uses.
type Options struct {
	Dictionary string
	Port       int
	Config     string
}

func parseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`typeahead: a fuzzy spelling corrector served over HTTP, built on levfuzzy.Index.

Example: /search?q=helo returns spelling corrections for "helo".

Accepted query params:
 q: The string query. Default is the empty string.
 n: The max number of results. Default is 10.
 p: The length of the prefix of the query string to ignore for edit distance.
    Default is 1/5 the length of the query string.
 d: The edit distance to search within. Default is 1/3 the length of the
    non-ignored suffix of the query.
 e: If non-zero and fewer than the desired number of results are found with
    the specified criteria, the results will be augmented with strings that
    have a prefix that matches the query criteria. Default: 1`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Dictionary, "dictionary", "d", "/usr/share/dict/words",
			"a file containing correctly spelled words, one per line"),
	)
	flagSet.CreateGroup("server", "Server",
		flagSet.IntVarP(&opts.Port, "port", "p", 3000, "the port the server will listen on"),
	)
	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", "typeahead config file (yaml)"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}
	return opts
}

// newSearchHandler loads the dictionary file at filename into an Index and
// returns it wrapped in a searchHandler. The dictionary file should
// contain a list of words, one per line.
func newSearchHandler(filename string) searchHandler {
	t := levfuzzy.Empty[rune, string](alphabet.Runes{})
	gologger.Info().Msgf("Loading %v, this may take a few seconds...", filename)
	start := time.Now()
	file, err := os.Open(filename)
	if err != nil {
		gologger.Fatal().Msgf("%v: %v", filename, err)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)
	count := 0
	for scanner.Scan() {
		word := strings.ToLower(scanner.Text())
		t = t.Add(alphabet.StringToRunes(word), word)
		count++
	}
	elapsed := time.Since(start)
	gologger.Info().Msgf("Loaded %v words from %v in time %v.", count, filename, elapsed)
	return searchHandler{idx: t}
}

type searchHandler struct {
	idx *levfuzzy.Index[rune, string]
}

// uniq returns up to n strings in the input slice, omitting duplicates.
func uniq(xs []string, n int) []string {
	seen := make(map[string]bool)
	j := 0
	for i, x := range xs {
		if !seen[x] {
			seen[x] = true
			xs[j] = xs[i]
			j++
			if j >= n {
				return xs[:j]
			}
		}
	}
	return xs[:j]
}

// searchConfig specifies parameters for an Index search.
type searchConfig struct {
	query          string
	limit          int
	dist           int8
	ignorePrefix   int
	expandSuffixes bool
}

// parseQuery parses query params into a searchConfig. See parseFlags'
// description above for the accepted params.
func parseQuery(params map[string][]string) *searchConfig {
	cfg := &searchConfig{}
	if qp, ok := params["q"]; ok && len(qp) > 0 {
		cfg.query = qp[0]
	}
	cfg.limit = 10
	if qp, ok := params["n"]; ok && len(qp) > 0 {
		if i, err := strconv.Atoi(qp[0]); err == nil {
			cfg.limit = i
		}
	}
	pset := false
	if qp, ok := params["p"]; ok && len(qp) > 0 {
		if i, err := strconv.Atoi(qp[0]); err == nil {
			cfg.ignorePrefix = i
			pset = true
		}
	}
	if !pset {
		cfg.ignorePrefix = len(cfg.query) / 5
	}
	cfg.dist = 1
	dset := false
	if qp, ok := params["d"]; ok && len(qp) > 0 {
		if i, err := strconv.ParseInt(qp[0], 10, 8); err == nil {
			cfg.dist = int8(i)
			dset = true
		}
	}
	if !dset {
		rawDist := (len(cfg.query) - cfg.ignorePrefix) / 3
		if rawDist > 127 {
			rawDist = 127
		}
		cfg.dist = int8(rawDist)
	}
	cfg.expandSuffixes = true
	if qp, ok := params["e"]; ok && len(qp) > 0 {
		if i, err := strconv.Atoi(qp[0]); err == nil && i == 0 {
			cfg.expandSuffixes = false
		}
	}
	return cfg
}

func (s searchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cfg := parseQuery(r.URL.Query())
	results := []string{}
	if cfg.query != "" {
		start := time.Now()
		query := alphabet.StringToRunes(cfg.query)
		pairs := s.idx.SuggestAfterExactPrefix(query, cfg.ignorePrefix, cfg.dist, cfg.limit)
		if cfg.expandSuffixes && len(pairs) < cfg.limit {
			more := s.idx.SuggestSuffixesAfterExactPrefix(query, cfg.ignorePrefix, cfg.dist, cfg.limit)
			pairs = append(pairs, more...)
		}
		elapsed := time.Since(start)
		for _, p := range pairs {
			results = append(results, p.Value)
		}
		results = uniq(results, cfg.limit)
		gologger.Verbose().Msgf("Query %+v returned %v results in time %v", cfg, len(results), elapsed)
	}
	j, _ := json.Marshal(results)
	fmt.Fprint(w, string(j))
}

var indexText = `
<html>
  <head>
    <script src="https://cdnjs.cloudflare.com/ajax/libs/jquery/1.11.2/jquery.min.js"
            integrity="sha256-1OxYPHYEAB+HIz0f4AdsvZCfFaX4xrTD9d2BtGLXnTI="
            crossorigin="anonymous"></script>
    <script src="https://cdnjs.cloudflare.com/ajax/libs/easy-autocomplete/1.3.5/jquery.easy-autocomplete.min.js"
            integrity="sha256-aS5HnZXPFUnMTBhNEiZ+fKMsekyUqwm30faj/Qh/gIA="
            crossorigin="anonymous"></script>
    <link rel="stylesheet"
          href="https://cdnjs.cloudflare.com/ajax/libs/easy-autocomplete/1.3.5/easy-autocomplete.min.css"
          integrity="sha256-fARYVJfhP7LIqNnfUtpnbujW34NsfC4OJbtc37rK2rs="
          crossorigin="anonymous" />
    <link rel="stylesheet"
          href="https://cdnjs.cloudflare.com/ajax/libs/easy-autocomplete/1.3.5/easy-autocomplete.themes.min.css"
          integrity="sha256-kK9BInVvQN0PQuuyW9VX2I2/K4jfEtWFf/dnyi2C0tQ="
          crossorigin="anonymous" />
  </head>
  <body>
    <form>
      <div id="remote">
        <input id="remote-suggest" />
      </div>
    </form>
    <script type="text/javascript">
      var options = {
        url: function(query) { return "../search?q=" + query; }
      };
      $("#remote-suggest").easyAutocomplete(options);
    </script>
  </body>
</html>
`

func main() {
	opts := parseFlags()

	if opts.Config != "" {
		cfg, err := LoadConfig(opts.Config)
		if err != nil {
			gologger.Fatal().Msgf("failed to read config file: %v", err)
		}
		if cfg.Dictionary != "" {
			opts.Dictionary = cfg.Dictionary
		}
		if cfg.Port != 0 {
			opts.Port = cfg.Port
		}
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, indexText)
	})
	http.Handle("/search", newSearchHandler(opts.Dictionary))
	gologger.Info().Msgf("Serving on http://0.0.0.0:%d", opts.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", opts.Port), nil); err != nil {
		gologger.Fatal().Msgf("server exited: %v", err)
	}
}
