// Package synthesis defines the text-to-speech provider contract.
//
// Synthesize returns a pull iterator of raw audio chunks. Callers drain it
// with Next and must Close it when they stop early:
//
//	it, err := tts.Synthesize(ctx, "Hello", tts.DefaultVoice())
//	if err != nil {
//	    return err
//	}
//	defer it.Close()
//	for {
//	    chunk, ok, err := it.Next(ctx)
//	    if err != nil || !ok {
//	        return err
//	    }
//	    play(chunk)
//	}
package synthesis
