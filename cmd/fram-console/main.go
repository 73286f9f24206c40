// Command fram-console is an interactive console for MB85RC FRAM chips.
//
// It connects to a chip over a Linux I2C bus (or an in-memory simulator)
// and accepts simple read/write/dump commands, which is handy when bringing
// up a new board or inspecting what an application left in memory.
//
// Usage:
//
//	fram-console [flags]
//
// Flags:
//
//	-bus string     I2C bus name or number (default: first available)
//	-mock int       Use an in-memory chip of this capacity instead of hardware
//	-address uint   7-bit peripheral address (default 0x50)
//	-size int       Device capacity in bytes; 0 auto-detects
//	-trace string   Write a CBOR transaction trace to this file
//
// Commands:
//
//	id                      query and print the device identity
//	size                    print the device capacity
//	read <addr> <n>         read n bytes at addr and hex-dump them
//	write <addr> <hex>...   write hex bytes at addr
//	fill <addr> <n> <byte>  write n copies of byte at addr
//	dump [addr [n]]         hex-dump (default: 256 bytes from the cursor)
//	seek <pos>              set the stream cursor
//	help                    show this list
//	exit                    quit
//
// Addresses accept decimal or 0x-prefixed hex.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/fram-devices/mb85rc-go/internal/harness/mock"
	"github.com/fram-devices/mb85rc-go/pkg/bus"
	"github.com/fram-devices/mb85rc-go/pkg/mb85rc"
	"github.com/fram-devices/mb85rc-go/pkg/trace"
)

var (
	busName   = flag.String("bus", "", "I2C bus name or number (default: first available)")
	mockSize  = flag.Int64("mock", 0, "use an in-memory chip of this capacity instead of hardware")
	address   = flag.Uint("address", mb85rc.DefaultAddr, "7-bit peripheral address")
	size      = flag.Int64("size", 0, "device capacity in bytes; 0 auto-detects")
	tracePath = flag.String("trace", "", "write a CBOR transaction trace to this file")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	var tracer trace.Logger
	if *tracePath != "" {
		fl, err := trace.NewFileLogger(*tracePath)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		defer fl.Close()
		tracer = fl
	}

	b, cleanup, err := openBus()
	if err != nil {
		return err
	}
	defer cleanup()

	dev, err := mb85rc.Connect(b, mb85rc.Config{
		Address: uint16(*address),
		Size:    *size,
		Trace:   tracer,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Connected: device %#02x, %d bytes\n", dev.Addr(), dev.Size())
	fmt.Println(`Type "help" for commands.`)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fram> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	console := &console{dev: dev}
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if done := console.dispatch(line); done {
			return nil
		}
	}
}

// openBus returns the bus to use: the mock chip when -mock is set,
// otherwise a periph.io I2C bus.
func openBus() (bus.Bus, func(), error) {
	if *mockSize != 0 {
		if *mockSize < 128 || *mockSize > 1<<16 || *mockSize&(*mockSize-1) != 0 {
			return nil, nil, fmt.Errorf("mock capacity must be a power of two between 128 and 65536")
		}
		chip := mock.NewChip(*mockSize)
		chip.Addr = uint16(*address)
		return chip, func() {}, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("host init: %w", err)
	}
	b, err := i2creg.Open(*busName)
	if err != nil {
		return nil, nil, fmt.Errorf("open I2C bus %q: %w", *busName, err)
	}
	return b, func() { b.Close() }, nil
}

// console holds per-session state for the command loop.
type console struct {
	dev *mb85rc.Device
}

// dispatch executes one command line. It returns true when the session
// should end.
func (c *console) dispatch(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		printHelp()
	case "id":
		err = c.cmdID()
	case "size", "cap":
		fmt.Printf("%d bytes\n", c.dev.Size())
	case "read", "r":
		err = c.cmdRead(args)
	case "write", "w":
		err = c.cmdWrite(args)
	case "fill":
		err = c.cmdFill(args)
	case "dump", "d":
		err = c.cmdDump(args)
	case "seek":
		err = c.cmdSeek(args)
	case "exit", "quit", "q":
		return true
	default:
		err = fmt.Errorf("unknown command %q, try \"help\"", cmd)
	}

	if err != nil {
		fmt.Println("error:", err)
	}
	return false
}

func (c *console) cmdID() error {
	id, err := c.dev.Identify()
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func (c *console) cmdRead(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: read <addr> <n>")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return fmt.Errorf("bad length %q", args[1])
	}

	buf := make([]byte, n)
	if _, err := c.dev.ReadAt(addr, buf); err != nil {
		return err
	}
	hexDump(os.Stdout, int64(addr), buf)
	return nil
}

func (c *console) cmdWrite(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: write <addr> <hex>...")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}

	data := make([]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.ParseUint(strings.TrimPrefix(a, "0x"), 16, 8)
		if err != nil {
			return fmt.Errorf("bad byte %q", a)
		}
		data = append(data, byte(v))
	}

	n, err := c.dev.WriteAt(addr, data)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d bytes at %#04x\n", n, addr)
	return nil
}

func (c *console) cmdFill(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: fill <addr> <n> <byte>")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return fmt.Errorf("bad length %q", args[1])
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(args[2], "0x"), 16, 8)
	if err != nil {
		return fmt.Errorf("bad byte %q", args[2])
	}

	data := make([]byte, n)
	for i := range data {
		data[i] = byte(v)
	}
	if _, err := c.dev.WriteAt(addr, data); err != nil {
		return err
	}
	fmt.Printf("filled %d bytes at %#04x with %#02x\n", n, addr, v)
	return nil
}

func (c *console) cmdDump(args []string) error {
	var start int64
	n := 256

	switch len(args) {
	case 0:
		pos, err := c.dev.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		start = pos
	case 1, 2:
		addr, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		start = int64(addr)
		if len(args) == 2 {
			n, err = strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("bad length %q", args[1])
			}
		}
	default:
		return errors.New("usage: dump [addr [n]]")
	}

	if int64(n) > c.dev.Size()-start {
		n = int(c.dev.Size() - start)
	}
	if n <= 0 {
		return nil
	}

	buf := make([]byte, n)
	if _, err := c.dev.ReadAt(uint16(start), buf); err != nil {
		return err
	}
	hexDump(os.Stdout, start, buf)
	return nil
}

func (c *console) cmdSeek(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: seek <pos>")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	pos, err := c.dev.Seek(int64(addr), io.SeekStart)
	if err != nil {
		return err
	}
	fmt.Printf("cursor at %#04x\n", pos)
	return nil
}

// parseAddr parses a decimal or 0x-prefixed address and checks it fits the
// chip's 16-bit address space.
func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 17)
	if err != nil || v > 0xFFFF {
		return 0, fmt.Errorf("bad address %q", s)
	}
	return uint16(v), nil
}

// hexDump prints buf as 16-byte rows prefixed with real device addresses.
func hexDump(w io.Writer, start int64, buf []byte) {
	for off := 0; off < len(buf); off += 16 {
		end := off + 16
		if end > len(buf) {
			end = len(buf)
		}
		row := buf[off:end]

		fmt.Fprintf(w, "%04x  ", start+int64(off))
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(w, "%02x ", row[i])
			} else {
				fmt.Fprint(w, "   ")
			}
			if i == 7 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprint(w, " |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}

func printHelp() {
	fmt.Print(`Commands:
  id                      query and print the device identity
  size                    print the device capacity
  read <addr> <n>         read n bytes at addr and hex-dump them
  write <addr> <hex>...   write hex bytes at addr
  fill <addr> <n> <byte>  write n copies of byte at addr
  dump [addr [n]]         hex-dump (default: 256 bytes from the cursor)
  seek <pos>              set the stream cursor
  help                    show this list
  exit                    quit
`)
}
