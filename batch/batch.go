/*
 * batch.go, part of gostoich.
 *
 *
 * Copyright 2026 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * gostoich is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"
	"sync"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/stoichjson"
)

//Options for a batch run.
type Options struct {
	Cpus    int             //number of workers. 0 or less means runtime.NumCPU()
	Stoich  *stoich.Options //options for parsing and balancing. nil means the defaults
	Verbose bool            //log each failure
}

//DefaultOptions returns the default batch options.
func DefaultOptions() *Options {
	return &Options{Cpus: runtime.NumCPU(), Stoich: stoich.DefaultOptions()}
}

//Summary counts the results of a batch run.
type Summary struct {
	Lines    int `json:"lines"`    //reactions read
	Balanced int `json:"balanced"` //reactions balanced
	Failed   int `json:"failed"`   //reactions that could not be parsed or balanced
}

func (S Summary) String() string {
	return fmt.Sprintf("%d reactions, %d balanced, %d failed", S.Lines, S.Balanced, S.Failed)
}

type job struct {
	n     int
	input string
	resp  chan *stoichjson.BalanceResponse
}

//BalanceLine parses and balances one reaction.
func BalanceLine(input string, o *stoich.Options) *stoichjson.BalanceResponse {
	R, err := stoich.ParseReaction(input, o)
	if err != nil {
		return stoichjson.FromReaction(input, R, err)
	}
	B, err := stoich.Balance(R, o)
	return stoichjson.FromReaction(input, B, err)
}

//Run reads one reaction per line from in, balances them with o.Cpus workers,
//and writes one stoichjson.BalanceResponse per reaction to out, as JSON lines, in the
//same order as the input. Blank lines and lines starting with '#' are skipped.
//Run stops early if ctx is cancelled, returning the context's error.
func Run(ctx context.Context, in io.Reader, out io.Writer, o *Options) (Summary, error) {
	if o == nil {
		o = DefaultOptions()
	}
	cpus := o.Cpus
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	var sum Summary
	jobs := make(chan job)
	//the ordered queue. Each job's response channel is read in input order.
	queue := make(chan job, 2*cpus)
	var wg sync.WaitGroup
	for i := 0; i < cpus; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				j.resp <- BalanceLine(j.input, o.Stoich)
			}
		}()
	}
	readErr := make(chan error, 1)
	go func() {
		defer close(queue)
		defer close(jobs)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		n := 0
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				readErr <- err
				return
			}
			n++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			j := job{n: n, input: line, resp: make(chan *stoichjson.BalanceResponse, 1)}
			select {
			case queue <- j:
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
			select {
			case jobs <- j:
			case <-ctx.Done():
				j.resp <- stoichjson.FromReaction(j.input, nil, ctx.Err())
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- scanner.Err()
	}()
	var werr error
	for j := range queue {
		resp := <-j.resp
		sum.Lines++
		if resp.Balanced {
			sum.Balanced++
		} else {
			sum.Failed++
			if o.Verbose && resp.Error != nil {
				log.Printf("line %d: %s", j.n, resp.Error.Message)
			}
		}
		if werr != nil {
			continue //keep draining so the workers can finish.
		}
		b, err := json.Marshal(resp)
		if err == nil {
			b = append(b, '\n')
			_, err = out.Write(b)
		}
		if err != nil {
			werr = fmt.Errorf("writing result for line %d: %w", j.n, err)
		}
	}
	wg.Wait()
	if err := <-readErr; err != nil {
		return sum, err
	}
	return sum, werr
}
