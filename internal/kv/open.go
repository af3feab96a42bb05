// SPDX-License-Identifier: MIT
package kv

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/thatcatcamp/palettekitty/internal/db"
	"gorm.io/gorm"
)

// Options selects and configures a substrate
type Options struct {
	Driver        string // memory, sqlite, mysql, file, s3, none
	Path          string // directory for file, database path or DSN for sqlite/mysql
	CapacityBytes int64
	S3            S3Config
}

// Opened is a substrate plus whatever needs closing when done with it
type Opened struct {
	Substrate Substrate
	conn      *gorm.DB
}

// Close releases database connections held by the substrate
func (o *Opened) Close() error {
	if o.conn == nil {
		return nil
	}
	return db.Close(o.conn)
}

// Open builds the substrate described by opts
func Open(opts Options) (*Opened, error) {
	switch opts.Driver {
	case "memory":
		return &Opened{Substrate: NewMemory(int(opts.CapacityBytes))}, nil
	case "none":
		return &Opened{Substrate: Unavailable{}}, nil
	case "sqlite", "mysql", "mariadb":
		conn, err := db.Open(opts.Driver, opts.Path)
		if err != nil {
			return nil, err
		}
		return &Opened{Substrate: NewSQLStore(conn), conn: conn}, nil
	case "file", "":
		store, err := NewFileStore(afero.NewOsFs(), opts.Path, opts.CapacityBytes)
		if err != nil {
			return nil, err
		}
		return &Opened{Substrate: store}, nil
	case "s3":
		store, err := NewS3Store(NewS3Client(opts.S3), opts.S3)
		if err != nil {
			return nil, err
		}
		return &Opened{Substrate: store}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", opts.Driver)
	}
}
