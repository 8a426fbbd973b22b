package transcode

import "github.com/cocosip/go-jpegls/jpegls/pixel"

// TripletFunc maps three component values to a triplet, typically a color
// transform's Forward or Inverse method.
type TripletFunc[S pixel.Sample] func(v1, v2, v3 int) pixel.Triplet[S]

// TransformLine applies fn to pixelCount packed triplets of src and stores
// the packed results in dst. dst and src may be the same slice.
func TransformLine[S pixel.Sample](dst, src []S, pixelCount int, fn TripletFunc[S]) {
	for i := 0; i < pixelCount; i++ {
		j := 3 * i
		t := fn(int(src[j]), int(src[j+1]), int(src[j+2]))
		dst[j], dst[j+1], dst[j+2] = t.V[0], t.V[1], t.V[2]
	}
}

// TripletToLine scatters packed triplets of src into three planes of dst,
// stride samples apart, applying fn. min(pixelCount, stride) pixels are
// processed; that count is returned.
func TripletToLine[S pixel.Sample](dst []S, stride int, src []S, pixelCount int, fn TripletFunc[S]) int {
	count := min(pixelCount, stride)
	for x := 0; x < count; x++ {
		j := 3 * x
		t := fn(int(src[j]), int(src[j+1]), int(src[j+2]))
		dst[x] = t.V[0]
		dst[x+stride] = t.V[1]
		dst[x+2*stride] = t.V[2]
	}
	return count
}

// LineToTriplet gathers three planes of src, stride samples apart, into
// packed triplets of dst, applying fn. min(pixelCount, stride) pixels are
// processed; that count is returned.
func LineToTriplet[S pixel.Sample](dst []S, pixelCount int, src []S, stride int, fn TripletFunc[S]) int {
	count := min(pixelCount, stride)
	for x := 0; x < count; x++ {
		t := fn(int(src[x]), int(src[x+stride]), int(src[x+2*stride]))
		j := 3 * x
		dst[j], dst[j+1], dst[j+2] = t.V[0], t.V[1], t.V[2]
	}
	return count
}

// QuadToLine scatters packed quads of src into four planes of dst. fn is
// applied to the first three components; the fourth passes through.
func QuadToLine[S pixel.Sample](dst []S, stride int, src []S, pixelCount int, fn TripletFunc[S]) int {
	count := min(pixelCount, stride)
	for x := 0; x < count; x++ {
		j := 4 * x
		q := pixel.NewQuad(fn(int(src[j]), int(src[j+1]), int(src[j+2])), int(src[j+3]))
		dst[x] = q.V[0]
		dst[x+stride] = q.V[1]
		dst[x+2*stride] = q.V[2]
		dst[x+3*stride] = q.V4
	}
	return count
}

// LineToQuad gathers four planes of src into packed quads of dst. fn is
// applied to the first three components; the fourth passes through.
func LineToQuad[S pixel.Sample](dst []S, pixelCount int, src []S, stride int, fn TripletFunc[S]) int {
	count := min(pixelCount, stride)
	for x := 0; x < count; x++ {
		q := pixel.NewQuad(fn(int(src[x]), int(src[x+stride]), int(src[x+2*stride])), int(src[x+3*stride]))
		j := 4 * x
		dst[j], dst[j+1], dst[j+2], dst[j+3] = q.V[0], q.V[1], q.V[2], q.V4
	}
	return count
}

// SwapRB exchanges the first and third sample of each of pixelCount tuples
// of samplesPerPixel samples.
func SwapRB[S pixel.Sample](buf []S, samplesPerPixel, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		j := i * samplesPerPixel
		buf[j], buf[j+2] = buf[j+2], buf[j]
	}
}
