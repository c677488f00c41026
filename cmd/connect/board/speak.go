package board

import (
	"os"
	"path/filepath"

	htgotts "github.com/hegedustibor/htgo-tts"
	handlers "github.com/hegedustibor/htgo-tts/handlers"
	voices "github.com/hegedustibor/htgo-tts/voices"
)

const audioFolder = "audio"

func speak(msg string) {
	go func() {
		speech := htgotts.Speech{Folder: audioFolder, Language: voices.English, Handler: &handlers.MPlayer{}}

		file := filepath.Join(audioFolder, "speech.mp3")
		os.Remove(file)

		fileName, err := speech.CreateSpeechFile(msg, "speech")
		if err != nil {
			return
		}

		speech.PlaySpeechFile(fileName)

		os.Remove(file)
	}()
}
