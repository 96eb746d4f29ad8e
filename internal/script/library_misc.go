package script

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// file library_misc.go implements the Miscellaneous standard-library group:
// debugLog, encodeURI, encodeURIComponent, getGlobal, setGlobal, and fetch
// (the only async built-in).

func init() {
	registerBuiltin("debugLog", false, biDebugLog)
	registerBuiltin("encodeURI", false, biEncodeURI)
	registerBuiltin("encodeURIComponent", false, biEncodeURIComponent)
	registerBuiltin("getGlobal", false, biGetGlobal)
	registerBuiltin("setGlobal", false, biSetGlobal)
	registerBuiltin("fetch", true, biFetch)
}

func biDebugLog(args []Value, host HostRef) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = stringify(a)
	}
	host.log(strings.Join(parts, " "))
	return NewNull(), nil
}

// uriUnreservedExtra are the characters encodeURI leaves unescaped beyond
// encodeURIComponent's set, matching JS's encodeURI reserved-character
// list.
const uriUnreservedExtra = ";/?:@&=+$,#"

func percentEncode(s string, keep string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 && (isURIUnreserved(byte(r)) || strings.ContainsRune(keep, r)) {
			b.WriteRune(r)
			continue
		}
		for _, c := range []byte(string(r)) {
			b.WriteString("%")
			b.WriteString(strings.ToUpper(hexByte(c)))
		}
	}
	return b.String()
}

func isURIUnreserved(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '!' || b == '~' || b == '*' || b == '\'' || b == '(' || b == ')':
		return true
	}
	return false
}

func hexByte(b byte) string {
	const hex = "0123456789abcdef"
	return string([]byte{hex[b>>4], hex[b&0xf]})
}

// biEncodeURI percent-encodes uri, preserving the URI-reserved punctuation
// set; when extra (default true) it additionally encodes ')', matching the
// data model's "when extra is true also percent-encodes )" contract.
func biEncodeURI(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	extra := boolArgDefault(args, 1, true)
	keep := uriUnreservedExtra
	out := percentEncode(s, keep)
	if extra {
		out = strings.ReplaceAll(out, ")", "%29")
	}
	return NewString(out), nil
}

func biEncodeURIComponent(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	extra := boolArgDefault(args, 1, true)
	out := percentEncode(s, "")
	if extra {
		out = strings.ReplaceAll(out, ")", "%29")
	}
	return NewString(out), nil
}

func biGetGlobal(args []Value, host HostRef) (Value, error) {
	name, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	if v, found := host.ensureGlobals().Get(name); found {
		return v, nil
	}
	return NewNull(), nil
}

func biSetGlobal(args []Value, host HostRef) (Value, error) {
	name, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	v := arg(args, 1)
	host.ensureGlobals().Set(name, v)
	return v, nil
}

// biFetch implements the fetch contract: a single URL or an Array of URLs,
// plus an optional options Object ({method, headers, body, isText}). An
// Array of URLs issues all requests concurrently via errgroup and returns
// an Array of same-length results, Null for each individual failure. Every
// URL passes through host.urlFn first. Only ever reached by the async
// evaluator; the sync evaluator special-cases fetch as an inert no-op
// before this function is called.
func biFetch(args []Value, host HostRef) (Value, error) {
	target := arg(args, 0)
	init := parseFetchInit(arg(args, 1))

	if target.Type() == Array {
		urls := target.ArraySlice()
		out := make([]Value, len(urls))
		g, ctx := errgroup.WithContext(host.context())
		for i, u := range urls {
			i, u := i, u
			g.Go(func() error {
				if ctx.Err() != nil {
					out[i] = NewNull()
					return nil
				}
				if u.Type() != String {
					out[i] = NewNull()
					return nil
				}
				out[i] = doFetchOne(host, u.Str(), init)
				return nil
			})
		}
		_ = g.Wait()
		return NewArray(out), nil
	}

	if target.Type() != String {
		return NewNull(), nil
	}
	return doFetchOne(host, target.Str(), init), nil
}

func parseFetchInit(v Value) *FetchInit {
	if v.Type() != Object {
		return nil
	}
	init := &FetchInit{Headers: map[string]string{}}
	if m, ok := v.Obj().Get("method"); ok && m.Type() == String {
		init.Method = m.Str()
	}
	if b, ok := v.Obj().Get("body"); ok && b.Type() == String {
		init.Body = b.Str()
	}
	if h, ok := v.Obj().Get("headers"); ok && h.Type() == Object {
		for _, k := range h.Obj().Keys() {
			hv, _ := h.Obj().Get(k)
			if hv.Type() == String {
				init.Headers[k] = hv.Str()
			}
		}
	}
	return init
}

// doFetchOne performs one request, through host.FetchFn if set else a real
// net/http round trip, decoding the body as JSON or text per the response's
// IsText flag. Any failure logs via host.logFn and yields Null, never a
// propagated error.
func doFetchOne(host HostRef, url string, init *FetchInit) Value {
	url = host.rewriteURL(url)

	var resp *FetchResponse
	var err error
	if host.FetchFn != nil {
		resp, err = host.FetchFn(url, init)
	} else {
		resp, err = defaultFetch(url, init)
	}
	if err != nil {
		host.log(err.Error())
		return NewNull()
	}
	if resp == nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		host.log("fetch: non-ok status")
		return NewNull()
	}
	if resp.IsText {
		return NewString(string(resp.Body))
	}
	body := string(resp.Body)
	if !gjson.Valid(body) {
		host.log("fetch: malformed JSON body")
		return NewNull()
	}
	return gjsonToValue(gjson.Parse(body))
}

func defaultFetch(url string, init *FetchInit) (*FetchResponse, error) {
	method := "GET"
	var body io.Reader
	if init != nil {
		if init.Method != "" {
			method = init.Method
		}
		if init.Body != "" {
			body = strings.NewReader(init.Body)
		}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	if init != nil {
		for k, v := range init.Headers {
			req.Header.Set(k, v)
		}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	isText := !json.Valid(data)
	return &FetchResponse{StatusCode: resp.StatusCode, Body: data, IsText: isText}, nil
}
