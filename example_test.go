package audiotag_test

import (
	"context"
	"fmt"
	"log"

	"github.com/simonhull/audiotag"
)

func Example() {
	file, err := audiotag.Open("song.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	title, err := file.ReadTag("TITLE")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(title)
}

func ExampleFile_SetTag() {
	file, err := audiotag.OpenReadWrite("song.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	if err := file.SetTag("ARTIST", "Example Artist"); err != nil {
		log.Fatal(err)
	}
}

func ExampleFile_WriteTags() {
	file, err := audiotag.OpenReadWrite("song.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	coll := audiotag.NewCollection()
	tag := coll.AddTag(audiotag.TargetAlbum)
	tag.AddSimple("TITLE", "My Song")
	tag.AddSimple("ARTIST", "My Band")
	tag.AddSimple("TRACK_NUMBER", "3")

	if err := file.WriteTags(coll); err != nil {
		log.Fatal(err)
	}
}

func ExampleOpenMany() {
	files, err := audiotag.OpenMany(context.Background(), "a.mp3", "b.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for _, f := range files {
		title, err := f.ReadTag("TITLE")
		if err != nil {
			continue
		}
		fmt.Printf("%s: %s\n", f.Path(), title)
	}
}
