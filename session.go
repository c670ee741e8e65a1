// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luxfi/ledger-eth/apdu"
)

// Session owns one connection to the Ethereum app of a device. A Session is
// not safe for concurrent use: the device handles a single command at a
// time and its replies carry no request identifier, so callers sharing one
// must serialize access themselves.
type Session struct {
	admin   LedgerAdmin
	device  LedgerDevice
	version *apdu.Version

	cfg     Config
	log     *zap.SugaredLogger
	metrics *Metrics
}

type Option func(*Session)

// WithAdmin sets the admin used to open a device on first use.
func WithAdmin(admin LedgerAdmin) Option {
	return func(s *Session) { s.admin = admin }
}

// WithDevice uses an already open device.
func WithDevice(device LedgerDevice) Option {
	return func(s *Session) { s.device = device }
}

func WithConfig(cfg Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Session) { s.log = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// NewSession returns a session that opens its device lazily.
func NewSession(opts ...Option) *Session {
	s := &Session{cfg: DefaultConfig(), log: log}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.Debug && s.log == log {
		s.log = newLogger("debug")
	}
	return s
}

// Open connects to the device and checks its firmware.
func Open(debug bool, opts ...Option) (*Session, error) {
	s := NewSession(opts...)
	if debug && !s.cfg.Debug {
		s.cfg.Debug = true
		if s.log == log {
			s.log = newLogger("debug")
		}
	}
	if _, err := s.AppVersion(false); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Config returns the session settings.
func (s *Session) Config() Config {
	return s.cfg
}

// Acquire returns the session's device, opening it through the admin when
// none is held yet. Passing a device replaces the held one and drops the
// cached firmware version.
func (s *Session) Acquire(device LedgerDevice) (LedgerDevice, error) {
	if device != nil {
		s.device = device
		s.version = nil
		return device, nil
	}
	if s.device != nil {
		return s.device, nil
	}

	if s.admin == nil {
		s.admin = NewLedgerAdmin()
	}
	opened, err := s.admin.Connect(s.cfg.DeviceIndex)
	if err != nil {
		return nil, s.fail(errors.Wrap(ErrDeviceUnavailable, err.Error()))
	}
	s.device = opened
	s.version = nil
	return opened, nil
}

// AppVersion returns the version of the Ethereum app. The result is cached for
// the held device unless force is set.
func (s *Session) AppVersion(force bool) (apdu.Version, error) {
	device, err := s.Acquire(nil)
	if err != nil {
		return apdu.Version{}, err
	}
	if s.version != nil && !force {
		return *s.version, nil
	}
	s.version = nil

	reply, err := s.exchange(device, apdu.GetConfiguration, nil)
	if err != nil {
		return apdu.Version{}, s.fail(err)
	}
	version, err := apdu.DecodeVersion(reply)
	if err != nil {
		return apdu.Version{}, s.fail(err)
	}
	s.log.Debugf("Ethereum app version %s", version)

	if !version.Supported() {
		return version, s.fail(errors.Wrapf(ErrUnsupportedFirmware, "version %s", version))
	}
	s.version = &version
	return version, nil
}

// Send encodes one command, sends it and returns the reply data.
func (s *Session) Send(id apdu.CommandID, data []byte) ([]byte, error) {
	device, err := s.ready()
	if err != nil {
		return nil, err
	}
	reply, err := s.exchange(device, id, data)
	if err != nil {
		return nil, s.fail(err)
	}
	return reply, nil
}

// Close closes the held device and forgets it.
func (s *Session) Close() error {
	if s.device == nil {
		return nil
	}
	err := s.device.Close()
	s.device = nil
	s.version = nil
	return err
}

type transferState int

const (
	transferNotStarted transferState = iota
	transferFirstBlockSent
	transferContinuationSent
	transferComplete
	transferFailed
)

var transferStateNames = [...]string{"not-started", "first-block-sent", "continuation-sent", "complete", "failed"}

func (t transferState) String() string {
	return transferStateNames[t]
}

// sendChunked sends payload as a first block followed by continuation
// blocks and returns the reply to the last one. The first failure aborts
// the transfer; it is never resumed.
func (s *Session) sendChunked(first, next apdu.CommandID, payload []byte) ([]byte, error) {
	device, err := s.ready()
	if err != nil {
		return nil, err
	}

	frames, err := apdu.Frames(first, next, payload)
	if err != nil {
		return nil, s.fail(err)
	}
	s.metrics.observeTransfer(len(frames))

	state := transferNotStarted
	var reply []byte
	for i, frame := range frames {
		id := next
		if state == transferNotStarted {
			id = first
		}
		reply, err = s.exchangeFrame(device, id, frame)
		if err != nil {
			s.log.Debugf("transfer %s after block %d of %d", transferFailed, i+1, len(frames))
			return nil, s.fail(err)
		}
		if state == transferNotStarted {
			state = transferFirstBlockSent
		} else {
			state = transferContinuationSent
		}
	}
	state = transferComplete
	s.log.Debugf("transfer %s in %d blocks", state, len(frames))
	return reply, nil
}

func (s *Session) ready() (LedgerDevice, error) {
	if _, err := s.AppVersion(false); err != nil {
		return nil, err
	}
	return s.device, nil
}

func (s *Session) exchange(device LedgerDevice, id apdu.CommandID, data []byte) ([]byte, error) {
	frame, err := apdu.Encode(id, data)
	if err != nil {
		return nil, err
	}
	return s.exchangeFrame(device, id, frame)
}

func (s *Session) exchangeFrame(device LedgerDevice, id apdu.CommandID, frame []byte) ([]byte, error) {
	s.log.Debugf("[APDU] => %x", frame)
	s.metrics.incExchange(id.String())
	reply, err := device.Exchange(frame)
	if err != nil {
		s.log.Debugf("[APDU] <= %v", err)
		return nil, translateError(err)
	}
	s.log.Debugf("[APDU] <= %x", reply)
	return reply, nil
}

func (s *Session) fail(err error) error {
	s.metrics.incError(errorKind(err))
	return err
}
