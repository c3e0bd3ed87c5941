package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/desertwitch/anchor/internal/auditlog"
	"github.com/desertwitch/anchor/internal/filesystem"
	"github.com/desertwitch/anchor/internal/root"
	"github.com/dustin/go-humanize"
)

type osProvider interface {
	Open(name string) (*os.File, error)
	Stat(name string) (os.FileInfo, error)
}

// dumpRecords prints all audit records of the file at path, binding the
// recorded roots to fsys.
func dumpRecords(osHandler osProvider, path string, fsys *filesystem.FileSystem) error {
	f, err := osHandler.Open(path)
	if err != nil {
		return fmt.Errorf("(dump) failed to open: %w", err)
	}
	defer f.Close()

	records, err := auditlog.ReadAll(f)
	if err != nil {
		return fmt.Errorf("(dump) failed after %d records: %w", len(records), err)
	}

	codec := root.Codec{}

	var total uint64
	for _, r := range records {
		total += uint64(len(r.Request) + len(r.Response))

		anchor, n, err := codec.DecodePrefix(r.Request, fsys)
		if err != nil {
			slog.Warn("Record with undecodable root:",
				"seq", r.Seq,
				"method", r.Method,
				"err", err,
			)

			continue
		}

		slog.Info("Record:",
			"seq", r.Seq,
			"time", r.Time.Format(time.RFC3339Nano),
			"method", r.Method,
			"root", anchor,
			"input", string(r.Request[n:]),
			"response", string(r.Response),
		)
	}

	slog.Info("Audit log read:",
		"file", path,
		"records", len(records),
		"payload", humanize.Bytes(total),
	)

	return nil
}

// reportAuditLog reports the amount of data claimed in the audit log.
func reportAuditLog(osHandler osProvider, path string, size int64) {
	info, err := osHandler.Stat(path)
	if err != nil {
		slog.Warn("Failed to stat audit log.",
			"file", path,
			"err", err,
		)

		return
	}

	slog.Info("Audit log written:",
		"file", path,
		"claimed", humanize.Bytes(uint64(size)),
		"stored", humanize.Bytes(uint64(info.Size())),
	)
}
