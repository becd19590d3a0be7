// Copyright 2019 Richard Hartmann
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// fake_tester simulates a Modbus TCP component tester holding a 4-band
// resistor (Red Violet Orange Gold) at registers 22-25 and the SMD code 4992
// at registers 30-33.
package main

import (
	"log"
	"time"

	"github.com/tbrandon/mbserver"
)

const address = "127.0.0.1:1502"

func main() {
	serv := mbserver.NewServer()

	for i, v := range []uint16{2, 7, 3, 10} {
		serv.HoldingRegisters[22+i] = v
	}
	for i, v := range []uint16{4, 9, 9, 2} {
		serv.HoldingRegisters[30+i] = v
	}

	err := serv.ListenTCP(address)
	if err != nil {
		log.Printf("%v\n", err)
	}

	log.Printf("listening on %v", address)

	defer serv.Close()

	// Wait forever
	for {
		time.Sleep(1 * time.Second)
	}
}
