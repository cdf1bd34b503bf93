package frame

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		initial uint16
		want    uint16
	}{
		{
			name: "empty",
			data: nil,
			want: 0,
		},
		{
			name: "rfc1071 example",
			data: []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7},
			want: 0xddf2,
		},
		{
			name: "odd length pads with zero",
			data: []byte{0x01, 0x02, 0x03},
			want: 0x0402,
		},
		{
			name:    "initial value is added",
			data:    []byte{0x00, 0x01},
			initial: 0x0001,
			want:    0x0002,
		},
		{
			name: "carry folds back in",
			data: []byte{0xff, 0xff, 0x00, 0x01},
			want: 0x0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data, tt.initial); got != tt.want {
				t.Errorf("Checksum() = %#04x, want %#04x", got, tt.want)
			}
		})
	}
}
