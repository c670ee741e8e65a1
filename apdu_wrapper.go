// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	Channel    = 0x0101
	PacketSize = 64

	tagAPDU = 0x05
)

var errInvalidPacket = errors.New("invalid HID packet")

// WrapCommandAPDU splits a command into HID packets.
//
// Every packet starts with channel(2) tag(1) sequence(2). The first packet
// then carries the total command length(2) before the command bytes.
// Packets are zero padded to packetSize.
func WrapCommandAPDU(channel uint16, command []byte, packetSize int) ([][]byte, error) {
	if packetSize < 8 {
		return nil, errors.New("packet size must be at least 8")
	}
	if len(command) > 0xffff {
		return nil, errors.Errorf("command of %d bytes does not fit a 16-bit length", len(command))
	}

	buffer := make([]byte, 2, 2+len(command))
	binary.BigEndian.PutUint16(buffer, uint16(len(command)))
	buffer = append(buffer, command...)

	var packets [][]byte
	for seq := uint16(0); len(buffer) > 0; seq++ {
		packet := make([]byte, packetSize)
		binary.BigEndian.PutUint16(packet[0:2], channel)
		packet[2] = tagAPDU
		binary.BigEndian.PutUint16(packet[3:5], seq)

		n := copy(packet[5:], buffer)
		buffer = buffer[n:]
		packets = append(packets, packet)
	}
	return packets, nil
}

// writeCommandAPDU frames command and writes every packet to w unchanged.
// The HID library prepends the report id on the platforms that need one.
func writeCommandAPDU(w io.Writer, channel uint16, command []byte, packetSize int) error {
	packets, err := WrapCommandAPDU(channel, command, packetSize)
	if err != nil {
		return err
	}
	for _, packet := range packets {
		for written := 0; written < len(packet); {
			n, err := w.Write(packet[written:])
			if err != nil {
				return errors.Wrap(err, "writing to device")
			}
			written += n
		}
	}
	return nil
}

// responseAssembler collects reply packets until the announced length has
// been received.
type responseAssembler struct {
	channel  uint16
	seq      uint16
	total    int
	response []byte
}

func newResponseAssembler(channel uint16) *responseAssembler {
	return &responseAssembler{channel: channel, total: -1}
}

// add consumes one packet and reports whether the response is complete.
func (r *responseAssembler) add(packet []byte) (bool, error) {
	if len(packet) < 5 {
		return false, errors.Wrapf(errInvalidPacket, "%d bytes", len(packet))
	}
	if binary.BigEndian.Uint16(packet[0:2]) != r.channel {
		return false, errors.Wrap(errInvalidPacket, "wrong channel")
	}
	if packet[2] != tagAPDU {
		return false, errors.Wrapf(errInvalidPacket, "tag 0x%02x", packet[2])
	}
	if seq := binary.BigEndian.Uint16(packet[3:5]); seq != r.seq {
		return false, errors.Wrapf(errInvalidPacket, "sequence %d, want %d", seq, r.seq)
	}
	r.seq++

	payload := packet[5:]
	if r.total < 0 {
		if len(payload) < 2 {
			return false, errors.Wrap(errInvalidPacket, "missing length")
		}
		r.total = int(binary.BigEndian.Uint16(payload))
		r.response = make([]byte, 0, r.total)
		payload = payload[2:]
	}

	if left := r.total - len(r.response); left < len(payload) {
		payload = payload[:left]
	}
	r.response = append(r.response, payload...)
	return len(r.response) == r.total, nil
}

// UnwrapResponseAPDU reassembles a reply, including its status word, from
// HID packets.
func UnwrapResponseAPDU(channel uint16, packets [][]byte) ([]byte, error) {
	r := newResponseAssembler(channel)
	for _, packet := range packets {
		done, err := r.add(packet)
		if err != nil {
			return nil, err
		}
		if done {
			return r.response, nil
		}
	}
	return nil, errors.Wrap(errInvalidPacket, "response incomplete")
}
