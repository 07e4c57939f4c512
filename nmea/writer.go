package nmea

import "io"

// WriteSentence writes s as one complete line terminated by \r\n.
func WriteSentence(w io.Writer, s Sentence) error {
	_, err := io.WriteString(w, Format(s)+"\r\n")
	return err
}
