package main

import (
	"log"
	"time"

	"github.com/uberbrodt/act-go/act"
	"github.com/uberbrodt/act-go/act/shape"
	"github.com/uberbrodt/act-go/chronos"
)

func main() {
	clockShape := shape.Lit("what time is it?")

	addr := act.SpawnFunc(func(self act.Self, args ...any) (any, error) {
		for {
			_, _, err := self.ReceiveTimeout(3*time.Second, clockShape)
			if err != nil {
				log.Printf("The time is: %s\n", chronos.Now("UTC"))
				continue
			}
			log.Printf("Someone asked! The time is: %s\n", chronos.Now("LOCAL"))
		}
	})

	if err := addr.Send("what time is it?"); err != nil {
		log.Fatalf("send failed: %v", err)
	}

	time.Sleep(10 * time.Second)
	log.Printf("Process is alive?: %t", act.IsAlive(addr))
	addr.Kill()
	if _, err := addr.WaitTimeout(3 * time.Second); err != nil {
		log.Printf("process finished: %v", err)
	}
	log.Printf("Process is alive?: %t", act.IsAlive(addr))
}
