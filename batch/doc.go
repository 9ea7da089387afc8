/*
 * doc.go, part of gostoich.
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

//Package batch balances files with one reaction per line, concurrently, and writes the
//results as JSON lines. Input and output files can be compressed (zstd, gzip or flate,
//chosen by the file extension), and the output can go to an S3 bucket.
package batch
