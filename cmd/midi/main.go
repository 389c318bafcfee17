// command midi checks that midi is working: it lists the input ports, then
// prints every message from the chosen one.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pfcm/groove/midi"
)

var portFlag = flag.String("port", "", "input port to listen to, by substring; empty means the first")

func main() {
	flag.Parse()
	ctx := interruptContext()
	defer midi.CloseDriver()

	fmt.Println("Inputs:")
	for i, p := range midi.Ports() {
		fmt.Printf("\t%d: %s\n", i, p)
	}

	d := midi.Listen(ctx, midi.Port(*portFlag))
	c := d.Subscribe()
	for m := range c {
		fmt.Println(m)
	}
	if err := d.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Println("all done")
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}
