// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPool(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Get returns usable buffer",
			testFunc: func(t *testing.T) {
				buf := Default.Get()
				require.NotNil(t, buf)
				defer Default.Put(buf)

				buf.WriteString("hello")
				buf.WriteByte(' ')
				buf.Write([]byte("world"))

				assert.Equal(t, "hello world", buf.String())
				assert.Equal(t, 11, buf.Len())
				buf.Reset()
			},
		},
		{
			name: "Reset clears contents",
			testFunc: func(t *testing.T) {
				buf := Default.Get()
				buf.WriteString("secret")
				buf.Reset()
				assert.Equal(t, 0, buf.Len())
				Default.Put(buf)
			},
		},
		{
			name: "WriteTo drains into writer",
			testFunc: func(t *testing.T) {
				var out bytes.Buffer
				buf := Default.Get()
				defer func() {
					buf.Reset()
					Default.Put(buf)
				}()

				buf.WriteString("line\n")
				n, err := buf.WriteTo(&out)
				require.NoError(t, err)
				assert.Equal(t, int64(5), n)
				assert.Equal(t, "line\n", out.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestWith(t *testing.T) {
	t.Run("returns fn error", func(t *testing.T) {
		want := errors.New("boom")
		err := With(Default, func(buf Buffer) error {
			buf.WriteString("partial")
			return want
		})
		assert.ErrorIs(t, err, want)
	})

	t.Run("buffer is reset before reuse", func(t *testing.T) {
		p := &pool{p: Default.(*pool).p}
		require.NoError(t, With(p, func(buf Buffer) error {
			_, err := buf.WriteString("first")
			return err
		}))
		require.NoError(t, With(p, func(buf Buffer) error {
			assert.Equal(t, 0, buf.Len())
			return nil
		}))
	})

	t.Run("concurrent use", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				_ = With(Default, func(buf Buffer) error {
					buf.WriteByte(byte('a' + id%26))
					assert.Equal(t, 1, buf.Len())
					return nil
				})
			}(i)
		}
		wg.Wait()
	})
}
