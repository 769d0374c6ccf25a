package gelf

import (
	"bytes"
	"encoding/json"
	"net"
	"os"
	"time"
)

// Writer sends GELF messages over UDP. It is registered as a zap sink, so
// every Write carries exactly one JSON-encoded log entry.
type Writer struct {
	conn     net.Conn
	hostname string
	service  string
}

// New creates a GELF UDP writer connected to addr (e.g. "172.17.0.1:12201").
func New(addr, service string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = service
	}

	return &Writer{conn: conn, hostname: hostname, service: service}, nil
}

// syslog severities used by GELF.
var levels = map[string]int{
	"debug":  7,
	"info":   6,
	"warn":   4,
	"error":  3,
	"dpanic": 2,
	"panic":  2,
	"fatal":  2,
}

// Write converts a zap JSON entry to a GELF 1.1 message. Errors are
// swallowed so logging never fails the caller.
func (w *Writer) Write(p []byte) (int, error) {
	payload, err := w.convert(bytes.TrimSpace(p))
	if err != nil {
		return len(p), nil
	}
	// Fire-and-forget
	w.conn.Write(payload)
	return len(p), nil
}

func (w *Writer) Sync() error { return nil }

func (w *Writer) Close() error { return w.conn.Close() }

func (w *Writer) convert(line []byte) ([]byte, error) {
	var entry map[string]any
	if err := json.Unmarshal(line, &entry); err != nil {
		entry = map[string]any{"msg": string(line)}
	}

	msg := map[string]any{
		"version":   "1.1",
		"host":      w.hostname,
		"timestamp": float64(time.Now().UnixNano()) / 1e9,
		"level":     6,
		"_service":  w.service,
	}
	for k, v := range entry {
		switch k {
		case "msg":
			msg["short_message"] = v
		case "level":
			if s, ok := v.(string); ok {
				if lvl, ok := levels[s]; ok {
					msg["level"] = lvl
				}
			}
		case "ts":
			if ts, ok := v.(float64); ok {
				msg["timestamp"] = ts
			}
		case "stacktrace":
			msg["full_message"] = v
		case "id":
			// "_id" is reserved by GELF.
			msg["_record_id"] = v
		default:
			msg["_"+k] = v
		}
	}
	if _, ok := msg["short_message"]; !ok {
		msg["short_message"] = string(line)
	}
	return json.Marshal(msg)
}
