// Command jlsline runs an uncompressed pixel dump through the JPEG-LS line
// transcoder and checks that every scanline survives the forward and inverse
// color transform unchanged.
//
// Usage:
//
//	jlsline -in frame.raw -width 512 -height 512 -components 3 -transform hp1
//
// Input may be zstd-compressed; compression is detected from the frame magic
// or forced with -zstd.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	"github.com/klauspost/compress/zstd"

	"github.com/cocosip/go-jpegls/jpegls/colortransform"
	"github.com/cocosip/go-jpegls/jpegls/common"
	"github.com/cocosip/go-jpegls/jpegls/lossless"
	"github.com/cocosip/go-jpegls/jpegls/pixel"
	"github.com/cocosip/go-jpegls/jpegls/transcode"
)

// zstdMagic is the zstd frame magic as it appears on disk.
const zstdMagic = 0x28B52FFD

type options struct {
	in         string
	width      int
	height     int
	components int
	bits       int
	stored     int
	planar     int
	interleave string
	transform  string
	bgr        bool
	near       int
	zstd       bool
}

// result summarizes one verification run.
type result struct {
	lines      int
	bytes      int
	mismatches int
	firstBad   int
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "", "raw pixel dump (optionally zstd-compressed)")
	flag.IntVar(&opts.width, "width", 0, "columns")
	flag.IntVar(&opts.height, "height", 0, "rows")
	flag.IntVar(&opts.components, "components", 1, "samples per pixel (1-4)")
	flag.IntVar(&opts.bits, "bits", 8, "bits allocated per sample (8 or 16)")
	flag.IntVar(&opts.stored, "stored", 0, "bits stored per sample (default: bits)")
	flag.IntVar(&opts.planar, "planar", 0, "planar configuration (0 color-by-pixel, 1 color-by-plane)")
	flag.StringVar(&opts.interleave, "ilv", "auto", "interleave mode: auto, none, line or sample")
	flag.StringVar(&opts.transform, "transform", "none", "color transform: none, hp1, hp2 or hp3")
	flag.BoolVar(&opts.bgr, "bgr", false, "external data is BGR ordered")
	flag.IntVar(&opts.near, "near", 0, "NEAR parameter used to report coding parameters")
	flag.BoolVar(&opts.zstd, "zstd", false, "force zstd decompression of the input")
	flag.Parse()

	if opts.in == "" || opts.width <= 0 || opts.height <= 0 {
		fmt.Println("Usage: jlsline -in <file> -width <w> -height <h> [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if opts.stored == 0 {
		opts.stored = opts.bits
	}

	if err := run(opts); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	traits, err := lossless.NewTraitsForBitDepth(opts.stored, opts.near)
	if err != nil {
		return err
	}

	f, err := os.Open(opts.in)
	if err != nil {
		return err
	}
	defer f.Close()

	r, closeInput, err := openInput(f, opts.zstd)
	if err != nil {
		return err
	}
	defer closeInput()

	fmt.Printf("Input: %s\n", opts.in)
	fmt.Printf("  Size: %dx%d, %d component(s), %d/%d bits\n", opts.width, opts.height, cfg.Components, opts.stored, cfg.SampleBits)
	fmt.Printf("  Interleave: %v, transform: %s, BGR: %v\n", cfg.Interleave, opts.transform, cfg.OutputBGR)
	fmt.Printf("Coding parameters:\n")
	fmt.Printf("  Transfer Syntax: %s\n", traits.TransferSyntaxUID())
	fmt.Printf("  MAXVAL=%d NEAR=%d RANGE=%d qbpp=%d LIMIT=%d RESET=%d\n",
		traits.MaxVal, traits.Near, traits.Range, traits.Qbpp, traits.Limit, traits.Reset)

	var res result
	if cfg.SampleBits == 8 {
		res, err = verify[uint8](cfg, r, opts.transform, opts.stored, opts.width, opts.height)
	} else {
		res, err = verify[uint16](cfg, r, opts.transform, opts.stored, opts.width, opts.height)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Verified %d line(s), %d byte(s)\n", res.lines, res.bytes)
	if res.mismatches > 0 {
		return fmt.Errorf("%d line(s) differ, first at line %d", res.mismatches, res.firstBad)
	}
	fmt.Println("✓ All lines round-trip exactly")
	return nil
}

// buildConfig derives the transcoder layout from the DICOM frame attributes
// and applies the interleave override.
func buildConfig(opts options) (transcode.Config, error) {
	if err := checkRanges(opts); err != nil {
		return transcode.Config{}, err
	}

	fi := &imagetypes.FrameInfo{
		Width:                     uint16(opts.width),
		Height:                    uint16(opts.height),
		BitsAllocated:             uint16(opts.bits),
		BitsStored:                uint16(opts.stored),
		HighBit:                   uint16(opts.stored - 1),
		SamplesPerPixel:           uint16(opts.components),
		PhotometricInterpretation: photometric(opts.components),
	}
	if opts.planar != 0 {
		fi.PlanarConfiguration = 1
	}
	cfg, err := transcode.ConfigFromFrameInfo(fi)
	if err != nil {
		return transcode.Config{}, err
	}

	switch opts.interleave {
	case "auto":
	case "none":
		cfg.Interleave = transcode.InterleaveNone
		cfg.BytesPerLine = opts.width * cfg.SampleBits / 8
	case "line", "sample":
		if opts.planar != 0 {
			return transcode.Config{}, fmt.Errorf("interleave %q needs color-by-pixel input", opts.interleave)
		}
		cfg.Interleave = transcode.InterleaveSample
		if opts.interleave == "line" {
			cfg.Interleave = transcode.InterleaveLine
		}
		cfg.BytesPerLine = opts.width * cfg.Components * cfg.SampleBits / 8
	default:
		return transcode.Config{}, fmt.Errorf("unknown interleave mode %q", opts.interleave)
	}
	cfg.OutputBGR = opts.bgr

	return cfg, cfg.Validate()
}

// checkRanges rejects flag values the 16-bit FrameInfo fields cannot hold.
func checkRanges(opts options) error {
	ranges := []struct {
		name     string
		value    int
		min, max int
	}{
		{"width", opts.width, 1, math.MaxUint16},
		{"height", opts.height, 1, math.MaxUint16},
		{"components", opts.components, 1, 4},
		{"bits", opts.bits, 1, 16},
		{"stored", opts.stored, 1, opts.bits},
		{"planar", opts.planar, 0, 1},
	}
	for _, r := range ranges {
		if r.value < r.min || r.value > r.max {
			return fmt.Errorf("-%s %d out of range [%d, %d]", r.name, r.value, r.min, r.max)
		}
	}
	return nil
}

func photometric(components int) string {
	if components == 1 {
		return "MONOCHROME2"
	}
	return "RGB"
}

// openInput wraps r in a zstd decoder when forced or when the input starts
// with a zstd frame.
func openInput(r io.Reader, force bool) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}
	if !force {
		magic, err := common.ReadUint32BE(head)
		if err != nil || magic != zstdMagic {
			return br, func() {}, nil
		}
	}

	dec, err := zstd.NewReader(br,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("zstd: %w", err)
	}
	return dec, dec.Close, nil
}

// verify pulls every external line through a stream-sourced transcoder,
// pushes the canonical lines into a raw buffer and compares the result with
// the bytes that were read.
func verify[S pixel.Sample](cfg transcode.Config, r io.Reader, name string, bits, width, height int) (result, error) {
	t, err := colortransform.Get[S](name, bits)
	if err != nil {
		return result{}, err
	}

	lines := height
	if cfg.Interleave == transcode.InterleaveNone {
		lines *= cfg.Components
	}

	var original bytes.Buffer
	puller, err := transcode.New[S](cfg, transcode.Source{Stream: io.TeeReader(r, &original)}, t)
	if err != nil {
		return result{}, err
	}

	restored := make([]byte, lines*cfg.BytesPerLine)
	pusher, err := transcode.New[S](cfg, transcode.Source{Raw: restored}, t)
	if err != nil {
		return result{}, err
	}

	samples := width
	if cfg.Interleave != transcode.InterleaveNone {
		samples *= cfg.Components
	}
	canonical := make([]S, samples)

	for y := 0; y < lines; y++ {
		if err := puller.PullLine(canonical, width, width); err != nil {
			return result{}, fmt.Errorf("line %d: %w", y, err)
		}
		if err := pusher.PushLine(canonical, width, width); err != nil {
			return result{}, fmt.Errorf("line %d: %w", y, err)
		}
	}

	res := result{lines: lines, bytes: len(restored), firstBad: -1}
	have := original.Bytes()
	for y := 0; y < lines; y++ {
		row := y * cfg.BytesPerLine
		if !bytes.Equal(have[row:row+cfg.BytesPerLine], restored[row:row+cfg.BytesPerLine]) {
			if res.firstBad < 0 {
				res.firstBad = y
			}
			res.mismatches++
		}
	}
	return res, nil
}
