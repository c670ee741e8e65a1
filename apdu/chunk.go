// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package apdu

// Chunks splits payload into blocks of at most size bytes. An empty payload
// still yields a single empty block so that the first frame is always sent.
func Chunks(payload []byte, size int) [][]byte {
	if size <= 0 {
		size = MaxDataSize
	}
	if len(payload) == 0 {
		return [][]byte{{}}
	}

	chunks := make([][]byte, 0, (len(payload)+size-1)/size)
	for start := 0; start < len(payload); start += size {
		end := start + size
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[start:end])
	}
	return chunks
}

// Frames encodes payload as a first-block frame followed by continuation
// frames, each carrying at most MaxDataSize bytes.
func Frames(first, next CommandID, payload []byte) ([][]byte, error) {
	chunks := Chunks(payload, MaxDataSize)
	frames := make([][]byte, 0, len(chunks))
	for i, chunk := range chunks {
		id := next
		if i == 0 {
			id = first
		}
		frame, err := Encode(id, chunk)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
