package clickhouse

import (
	"io"
	"time"
)

// revisionWithQuotaKey is the minimum server revision for which the client
// info block of a Query carries a quota key field (§6).
const revisionWithQuotaKey = 54060

// clientRevision is the protocol revision this client declares in Hello.
const clientRevision = 54213

// clientName identifies this driver in its Hello and client info blocks.
const clientName = "GoCHDriver"

const (
	clientVersionMajor = 1
	clientVersionMinor = 1
)

// ServerInfo is the handshake response from SERVER_HELLO (§4.4/§6).
type ServerInfo struct {
	Name         string
	VersionMajor uint64
	VersionMinor uint64
	Revision     uint64
	Timezone     *time.Location
	DisplayName  string
	VersionPatch uint64
}

func readServerInfo(r io.Reader) (ServerInfo, error) {
	name, err := readString(r)
	if err != nil {
		return ServerInfo{}, err
	}
	major, err := readUvarint(r)
	if err != nil {
		return ServerInfo{}, err
	}
	minor, err := readUvarint(r)
	if err != nil {
		return ServerInfo{}, err
	}
	revision, err := readUvarint(r)
	if err != nil {
		return ServerInfo{}, err
	}
	info := ServerInfo{Name: name, VersionMajor: major, VersionMinor: minor, Revision: revision, Timezone: time.UTC}
	if revision >= dbmsMinRevisionWithServerTimezone {
		tzName, err := readString(r)
		if err != nil {
			return ServerInfo{}, err
		}
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			loc = time.UTC
		}
		info.Timezone = loc
	}
	if revision >= dbmsMinRevisionWithServerDisplayName {
		displayName, err := readString(r)
		if err != nil {
			return ServerInfo{}, err
		}
		info.DisplayName = displayName
	}
	if revision >= dbmsMinRevisionWithVersionPatch {
		patch, err := readUvarint(r)
		if err != nil {
			return ServerInfo{}, err
		}
		info.VersionPatch = patch
	}
	return info, nil
}

const (
	dbmsMinRevisionWithServerTimezone    = 54058
	dbmsMinRevisionWithServerDisplayName = 54372
	dbmsMinRevisionWithVersionPatch      = 54401
)
