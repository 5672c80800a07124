package generator

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/valyala/fastjson"
)

// LevelError is the highest severity level. Records drawn at this level carry
// the extra error_code and stack_trace fields.
const LevelError = "ERROR"

var levels = []string{
	"DEBUG",
	"INFO",
	"WARN",
	LevelError,
}

var components = []string{
	"api",
	"database",
	"auth",
	"cache",
	"scheduler",
	"disk",
	"network",
}

var httpMethods = []string{
	"GET",
	"POST",
	"PUT",
	"DELETE",
	"PATCH",
}

var statusCodes = []int{200, 201, 400, 401, 403, 404, 500, 502, 503}

var queryTypes = []string{
	"SELECT",
	"INSERT",
	"UPDATE",
	"DELETE",
}

var authActions = []string{
	"login",
	"logout",
	"refresh",
	"validate",
}

var authMethods = []string{
	"password",
	"token",
	"oauth",
}

// Generator produces synthetic log records offset from a fixed base time.
//
// Each record is a pure function of its zero-based index: the random source is
// re-seeded from the index on every call, never shared across calls, so record
// i comes out byte-identical no matter how many records were generated before
// it or on which run.
type Generator struct {
	base  time.Time
	arena fastjson.Arena
	buf   []byte
}

// New returns a generator whose record timestamps start at base.
func New(base time.Time) *Generator {
	return &Generator{base: base.UTC()}
}

// Record builds the record for the given index. The returned value is backed
// by the generator's arena and stays valid only until the next call.
//
// The draw order is part of the output contract: level, component, host
// suffix, user id, then the fields of the single component-specific set in
// declaration order, then the error fields. Reordering any draw changes every
// subsequent value for that index.
func (g *Generator) Record(index int64) *fastjson.Value {
	g.arena.Reset()
	a := &g.arena
	r := rand.New(rand.NewPCG(uint64(index), 0))

	level := levels[r.IntN(len(levels))]
	component := components[r.IntN(len(components))]

	rec := a.NewObject()
	ts := g.base.Add(time.Duration(index) * time.Second)
	rec.Set("timestamp", a.NewString(ts.Format(time.RFC3339)))
	rec.Set("level", a.NewString(level))
	rec.Set("component", a.NewString(component))
	rec.Set("message", a.NewString(fmt.Sprintf("Operation %d completed", index)))
	rec.Set("request_id", a.NewString(fmt.Sprintf("req-%06d", index)))
	rec.Set("host", a.NewString(fmt.Sprintf("host-%d.example.com", between(r, 1, 10))))
	rec.Set("user_id", a.NewString("user"+strconv.Itoa(between(r, 1, 1000))))

	switch component {
	case "api":
		rec.Set("method", a.NewString(httpMethods[r.IntN(len(httpMethods))]))
		rec.Set("endpoint", a.NewString("/api/v1/resource/"+strconv.Itoa(between(r, 1, 100))))
		rec.Set("status", a.NewNumberInt(statusCodes[r.IntN(len(statusCodes))]))
		rec.Set("response_time", a.NewString(strconv.Itoa(between(r, 10, 500))+"ms"))
		oct3 := between(r, 1, 255)
		oct4 := between(r, 1, 255)
		rec.Set("ip", a.NewString(fmt.Sprintf("192.168.%d.%d", oct3, oct4)))
	case "database":
		rec.Set("query_type", a.NewString(queryTypes[r.IntN(len(queryTypes))]))
		rec.Set("duration_ms", a.NewNumberInt(between(r, 1, 1000)))
		rec.Set("rows_affected", a.NewNumberInt(between(r, 0, 100)))
		rec.Set("table", a.NewString("table_"+strconv.Itoa(between(r, 1, 20))))
	case "auth":
		rec.Set("action", a.NewString(authActions[r.IntN(len(authActions))]))
		if r.IntN(2) == 0 {
			rec.Set("success", a.NewTrue())
		} else {
			rec.Set("success", a.NewFalse())
		}
		rec.Set("method", a.NewString(authMethods[r.IntN(len(authMethods))]))
	}

	if level == LevelError {
		rec.Set("error_code", a.NewString("ERR_"+strconv.Itoa(between(r, 1000, 9999))))
		line := between(r, 1, 500)
		module := components[r.IntN(len(components))]
		rec.Set("stack_trace", a.NewString(fmt.Sprintf("at line %d in module %s", line, module)))
	}

	return rec
}

// AppendLine appends the compact serialized record for index, plus a trailing
// newline, to dst and returns the extended slice.
func (g *Generator) AppendLine(dst []byte, index int64) []byte {
	dst = g.Record(index).MarshalTo(dst)
	return append(dst, '\n')
}

// WriteLine writes the record line for index to w.
func (g *Generator) WriteLine(w io.Writer, index int64) error {
	g.buf = g.AppendLine(g.buf[:0], index)
	_, err := w.Write(g.buf)
	return err
}

// between draws an integer in [lo, hi], both bounds inclusive.
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
